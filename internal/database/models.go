package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CV status values.
const (
	StatusDraft      = "draft"
	StatusExporting  = "exporting"
	StatusExported   = "exported"
	StatusExportFail = "export_failed"
)

// User represents an account in the system.
type User struct {
	gorm.Model
	Username     string  `gorm:"uniqueIndex;size:64"`
	PasswordHash string  `gorm:"size:255"`
	ActiveCVID   *uint   `gorm:"index"`
	CVs          []CV    `gorm:"constraint:OnDelete:CASCADE"`
	Assets       []Asset `gorm:"constraint:OnDelete:CASCADE"`
}

// CV holds one CV document. The structured section data lives in Content as
// JSONB and the per-document appearance overrides in Customization.
type CV struct {
	gorm.Model
	Title           string         `gorm:"size:255"`
	Content         datatypes.JSON `gorm:"type:jsonb"`
	TemplateID      string         `gorm:"size:64;index"`
	Customization   datatypes.JSON `gorm:"type:jsonb"`
	IsDefault       bool           `gorm:"default:false;index"`
	PdfURL          string         `gorm:"size:512"`
	PreviewImageURL string         `gorm:"size:512"`
	Status          string         `gorm:"size:32"`
	UserID          uint           `gorm:"index"`
	User            User           `gorm:"constraint:OnDelete:CASCADE"`
}

// Asset records an object uploaded by a user (profile photos).
type Asset struct {
	gorm.Model
	ObjectKey   string `gorm:"size:512;uniqueIndex"`
	ContentType string `gorm:"size:128"`
	SizeBytes   int64
	UserID      uint `gorm:"index"`
	User        User `gorm:"constraint:OnDelete:CASCADE"`
}
