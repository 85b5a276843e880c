package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.QuizMinQuestions != 1 || cfg.QuizMaxQuestions != 20 {
		t.Errorf("quiz bounds = %d..%d", cfg.QuizMinQuestions, cfg.QuizMaxQuestions)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trainer.yaml")
	data := []byte("http_addr: \":9090\"\ndb_driver: postgres\nquiz_max_questions: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.QuizMaxQuestions != 30 {
		t.Errorf("QuizMaxQuestions = %d", cfg.QuizMaxQuestions)
	}
}

func TestLoadValidatesEnvOnly(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unsupported driver from env")
	}

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("QUIZ_MIN_QUESTIONS", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for zero quiz minimum from env")
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trainer.yaml")
	if err := os.WriteFile(path, []byte("db_driver: oracle\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
