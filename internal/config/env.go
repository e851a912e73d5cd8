package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds every process-level setting, loaded once at startup.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	RedisAddr string
	RedisPass string

	UploadDir string
	PublicURL string
}

// LoadEnv reads .env when present and falls back to sane defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":5000"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "artsys"),

		JWTSecret: getenv("SECRET_KEY", "ANGO_real"),

		SMTPHost: getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: getenv("GMAIL_USER", ""),
		SMTPPass: getenv("GMAIL_PASS", ""),

		RedisAddr: getenv("REDIS_ADDR", ""),
		RedisPass: getenv("REDIS_PASS", ""),

		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		PublicURL: getenv("PUBLIC_URL", "http://localhost:5000"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
