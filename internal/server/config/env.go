package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a
// .env file from the working directory first if one exists. Unset
// variables leave the current value untouched.
func parseEnv(config *Config) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("PORTAL_ADDR", &config.Addr)
	setString("PORTAL_SITE_URL", &config.SiteURL)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setString("S3_ACCESS_KEY", &config.S3AccessKey)
	setString("S3_SECRET_KEY", &config.S3SecretKey)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	setString("SMTP_HOST", &config.SMTPHost)
	setString("SMTP_USERNAME", &config.SMTPUsername)
	setString("SMTP_PASSWORD", &config.SMTPPassword)
	setString("MAIL_FROM", &config.MailFrom)
	setString("TEMPLATES_GLOB", &config.TemplatesGlob)

	if v, ok := os.LookupEnv("SMTP_PORT"); ok && v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}

	if v, ok := os.LookupEnv("SESSION_VALIDITY_MINUTES"); ok && v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.SessionValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
}
