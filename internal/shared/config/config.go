package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	OracleAPIKey    string
	OracleModel     string
	OracleBaseURL   string
	MaxUploadBytes  int64
	JWTSecret       string
}

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:     dbURL,
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		OracleAPIKey:    getEnv("ORACLE_API_KEY", os.Getenv("GROQ_API_KEY")),
		OracleModel:     getEnv("ORACLE_MODEL", "llama-3.3-70b-versatile"),
		OracleBaseURL:   getEnv("ORACLE_BASE_URL", "https://api.groq.com/openai/v1"),
		MaxUploadBytes:  maxUploadBytes(),
		JWTSecret:       getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func maxUploadBytes() int64 {
	raw := strings.TrimSpace(os.Getenv("MAX_FILE_SIZE_MB"))
	if raw == "" {
		return defaultMaxUploadBytes
	}
	mb := int64(0)
	for _, r := range raw {
		if r < '0' || r > '9' {
			return defaultMaxUploadBytes
		}
		mb = mb*10 + int64(r-'0')
	}
	if mb <= 0 {
		return defaultMaxUploadBytes
	}
	return mb << 20
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
