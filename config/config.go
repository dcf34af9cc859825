package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	AVATAR_SIZE     = 100
	CHATTER_MAX_LEN = 280
)

// Config holds all env-derived configuration for the application.
type Config struct {
	// Port is the HTTP server port.
	Port string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// FrontendOrigins are the CORS-allowed origins, semicolon separated in env.
	FrontendOrigins []string

	// UploadBucket is the storage bucket holding user-uploaded post images.
	UploadBucket string

	// SentryDSN may be empty, in which case error reporting is a no-op.
	SentryDSN string

	GinMode string
}

// DSN returns the mysql connection string for the board database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBName)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}

	bucket := os.Getenv("UPLOAD_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("$UPLOAD_BUCKET must be set")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "localboard"
	}

	var origins []string
	if raw := os.Getenv("FE_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ";")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	return &Config{
		Port:            port,
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          os.Getenv("DB_HOST"),
		DBName:          dbName,
		FrontendOrigins: origins,
		UploadBucket:    bucket,
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		GinMode:         os.Getenv("GIN_MODE"),
	}, nil
}
