package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string

	// Redis is optional; an empty addr disables the leaderboard cache.
	RedisAddr string
	RedisDB   int

	// pdftotext binary used by the PDF ingest path.
	PdftotextBin string

	// Directory holding the original uploaded exam PDFs.
	ArchiveDir string

	// Mock-exam sizing bounds.
	QuizMinQuestions int
	QuizMaxQuestions int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:         addr,
		PublicURL:        os.Getenv("PUBLIC_URL"),
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		AuthSecret:       envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:        envOr("ADMIN_USER", "admin"),
		AdminPassHash:    envOr("ADMIN_PASS_HASH", ""),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:3000"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisDB:          envInt("REDIS_DB", 0),
		PdftotextBin:     envOr("PDFTOTEXT_BIN", "pdftotext"),
		ArchiveDir:       envOr("ARCHIVE_DIR", "./data"),
		QuizMinQuestions: envInt("QUIZ_MIN_QUESTIONS", 1),
		QuizMaxQuestions: envInt("QUIZ_MAX_QUESTIONS", 20),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
