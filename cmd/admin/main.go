package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"cvstudio/internal/auth"
	"cvstudio/internal/config"
	"cvstudio/internal/database"
	"cvstudio/internal/render"
	"cvstudio/internal/tasks"
)

func main() {
	var (
		username        = flag.String("seed-user", "", "create an account with this username and a random password")
		refreshPreviews = flag.Bool("refresh-previews", false, "enqueue thumbnail regeneration for every catalog template")
		dbHost          = flag.String("db-host", "", "database host (defaults to DATABASE_HOST)")
		dbPort          = flag.Int("db-port", 0, "database port (defaults to DATABASE_PORT)")
		dbName          = flag.String("db-name", "", "database name (defaults to POSTGRES_DB)")
		dbUser          = flag.String("db-user", "", "database user (defaults to POSTGRES_USER)")
		dbPass          = flag.String("db-password", "", "database password (defaults to POSTGRES_PASSWORD)")
		sslMode         = flag.String("db-sslmode", "", "database sslmode (defaults to DATABASE_SSLMODE)")
	)
	flag.Parse()

	if *refreshPreviews {
		if err := enqueuePreviewTasks(); err != nil {
			log.Fatalf("enqueue preview tasks: %v", err)
		}
		return
	}

	u := strings.TrimSpace(*username)
	if u == "" {
		log.Fatal("nothing to do: pass --seed-user or --refresh-previews")
	}

	dbCfg, err := loadDatabaseConfig(*dbHost, *dbPort, *dbName, *dbUser, *dbPass, *sslMode)
	if err != nil {
		log.Fatalf("load database config: %v", err)
	}

	db, err := database.InitDatabase(dbCfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := db.AutoMigrate(&database.User{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var existing database.User
	switch err := db.Where("username = ?", u).First(&existing).Error; {
	case err == nil:
		log.Fatalf("user %q already exists", u)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Fatalf("query user: %v", err)
	}

	password, err := generateRandomPassword(24)
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := database.User{
		Username:     u,
		PasswordHash: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("Created account:\n")
	fmt.Printf("username: %s\n", u)
	fmt.Printf("password: %s\n", password)
	fmt.Printf("This password is shown only once; change it after the first login.\n")
}

func enqueuePreviewTasks() error {
	addr := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if addr == "" {
		addr = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: addr + ":" + port})
	defer client.Close()

	correlationID := uuid.NewString()
	for _, meta := range render.All() {
		task, err := tasks.NewTemplatePreviewTask(string(meta.ID), correlationID)
		if err != nil {
			return fmt.Errorf("build task for %s: %w", meta.ID, err)
		}
		if _, err := client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
			return fmt.Errorf("enqueue task for %s: %w", meta.ID, err)
		}
		fmt.Printf("enqueued preview task for %s\n", meta.ID)
	}
	return nil
}

func loadDatabaseConfig(host string, port int, name, user, password, sslmode string) (config.DatabaseConfig, error) {
	if strings.TrimSpace(host) == "" {
		host = os.Getenv("DATABASE_HOST")
	}
	if port <= 0 {
		if env := strings.TrimSpace(os.Getenv("DATABASE_PORT")); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return config.DatabaseConfig{}, fmt.Errorf("parse DATABASE_PORT: %w", err)
			}
			port = p
		}
	}
	if strings.TrimSpace(name) == "" {
		name = os.Getenv("POSTGRES_DB")
	}
	if strings.TrimSpace(user) == "" {
		user = os.Getenv("POSTGRES_USER")
	}
	if strings.TrimSpace(password) == "" {
		password = os.Getenv("POSTGRES_PASSWORD")
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = os.Getenv("DATABASE_SSLMODE")
	}

	if strings.TrimSpace(host) == "" {
		host = "localhost"
	}
	if port <= 0 {
		port = 5432
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = "disable"
	}
	if strings.TrimSpace(name) == "" {
		return config.DatabaseConfig{}, errors.New("database name is required (POSTGRES_DB)")
	}
	if strings.TrimSpace(user) == "" {
		return config.DatabaseConfig{}, errors.New("database user is required (POSTGRES_USER)")
	}
	if strings.TrimSpace(password) == "" {
		return config.DatabaseConfig{}, errors.New("database password is required (POSTGRES_PASSWORD)")
	}

	return config.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     name,
		User:     user,
		Password: password,
		SSLMode:  sslmode,
	}, nil
}

func generateRandomPassword(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		bytesLen = 24
	}
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
