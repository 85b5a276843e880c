package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileOverlay mirrors the env-settable fields that make sense in a checked-in
// config file. Zero values mean "keep the env/default value".
type fileOverlay struct {
	HTTPAddr         string   `yaml:"http_addr"`
	PublicURL        string   `yaml:"public_url"`
	DBDriver         string   `yaml:"db_driver"`
	DBDSN            string   `yaml:"db_dsn"`
	CORSOrigins      []string `yaml:"cors_origins"`
	RedisAddr        string   `yaml:"redis_addr"`
	RedisDB          *int     `yaml:"redis_db"`
	PdftotextBin     string   `yaml:"pdftotext_bin"`
	ArchiveDir       string   `yaml:"archive_dir"`
	QuizMinQuestions *int     `yaml:"quiz_min_questions"`
	QuizMaxQuestions *int     `yaml:"quiz_max_questions"`
}

// Load builds the config from the environment, then applies the YAML file at
// path on top when path is non-empty. The result is validated either way.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var ov fileOverlay
		if err := yaml.Unmarshal(data, &ov); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		apply(&cfg, ov)
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func apply(cfg *Config, ov fileOverlay) {
	if ov.HTTPAddr != "" {
		cfg.HTTPAddr = ov.HTTPAddr
	}
	if ov.PublicURL != "" {
		cfg.PublicURL = ov.PublicURL
	}
	if ov.DBDriver != "" {
		cfg.DBDriver = ov.DBDriver
	}
	if ov.DBDSN != "" {
		cfg.DBDSN = ov.DBDSN
	}
	if len(ov.CORSOrigins) > 0 {
		cfg.CORSOrigins = ov.CORSOrigins
	}
	if ov.RedisAddr != "" {
		cfg.RedisAddr = ov.RedisAddr
	}
	if ov.RedisDB != nil {
		cfg.RedisDB = *ov.RedisDB
	}
	if ov.PdftotextBin != "" {
		cfg.PdftotextBin = ov.PdftotextBin
	}
	if ov.ArchiveDir != "" {
		cfg.ArchiveDir = ov.ArchiveDir
	}
	if ov.QuizMinQuestions != nil {
		cfg.QuizMinQuestions = *ov.QuizMinQuestions
	}
	if ov.QuizMaxQuestions != nil {
		cfg.QuizMaxQuestions = *ov.QuizMaxQuestions
	}
}

func validate(cfg Config) error {
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db_driver %q", cfg.DBDriver)
	}
	if cfg.QuizMinQuestions < 1 {
		return fmt.Errorf("quiz_min_questions must be >= 1")
	}
	if cfg.QuizMaxQuestions < cfg.QuizMinQuestions {
		return fmt.Errorf("quiz_max_questions must be >= quiz_min_questions")
	}
	return nil
}
