package infra

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, read once at startup and passed
// explicitly through fx instead of consulted as ambient globals.
type Config struct {
	Host string
	Port string

	SecretKey      string
	AdminToken     string
	AdminTokenHash string

	AllowAllOrigins bool
	AllowedOrigins  []string

	ForceRuleBased bool
	OpenAIKey      string

	ResultsBackend string // "file" or "postgres"
	ResultsFile    string
	QuestionFile   string
	PostgresURL    string

	LogLevel  string
	LogFormat string
}

func LoadConfig() *Config {
	// Best effort: a missing .env just means plain environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Host:            getEnv("MIRROR_HOST", "0.0.0.0"),
		Port:            firstEnv([]string{"PORT", "MIRROR_PORT"}, "8000"),
		SecretKey:       getEnv("MIRROR_SECRET_KEY", "supersecretmirrorkey"),
		AdminTokenHash:  os.Getenv("MIRROR_ADMIN_TOKEN_HASH"),
		AllowAllOrigins: boolEnv("MIRROR_ALLOW_ALL_ORIGINS", false),
		ForceRuleBased:  boolEnv("MIRROR_FORCE_RULE_BASED", true),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ResultsBackend:  getEnv("MIRROR_RESULTS_BACKEND", "file"),
		ResultsFile:     getEnv("MIRROR_RESULTS_FILE", "quiz_results.json"),
		QuestionFile:    getEnv("MIRROR_QUESTION_FILE", "data/questions.json"),
		PostgresURL:     os.Getenv("POSTGRES_URL"),
		LogLevel:        getEnv("MIRROR_LOG_LEVEL", "info"),
		LogFormat:       getEnv("MIRROR_LOG_FORMAT", "console"),
	}

	// The admin export token defaults to the session secret, as the original
	// deployment did.
	cfg.AdminToken = getEnv("MIRROR_ADMIN_TOKEN", cfg.SecretKey)

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:8000", "http://127.0.0.1:8000"}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys []string, fallback string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
