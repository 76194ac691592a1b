package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ValidUserAssetKey reports whether key is a well-formed object key inside the
// given user's asset prefix. Keys outside the prefix, with traversal sequences
// or with unexpected extensions are rejected.
func ValidUserAssetKey(userID uint, key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	expected := fmt.Sprintf("user-assets/%d/", userID)
	if !strings.HasPrefix(key, expected) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	if len(key) > 200 {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	if !(strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") || strings.HasSuffix(lower, ".webp")) {
		return false
	}
	return true
}

// InlineDataURI reads an object and returns it as a base64 data URI, so the
// rendered page has no external fetches left when it reaches the printer.
func (c *Client) InlineDataURI(ctx context.Context, objectKey string) (string, error) {
	obj, err := c.GetObject(ctx, objectKey)
	if err != nil {
		return "", fmt.Errorf("fetch object for inline: %w", err)
	}
	defer obj.Close()

	contentType := "image/png"
	if stat, statErr := obj.Stat(); statErr == nil && strings.TrimSpace(stat.ContentType) != "" {
		contentType = stat.ContentType
	} else if statErr != nil {
		return "", statErr
	}

	raw, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("read object for inline: %w", err)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw)), nil
}
