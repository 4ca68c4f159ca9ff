package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	TestDir   string // exam PDFs served as quizzes
	KeyDir    string // answer-key PDFs and spreadsheets
	AnswerDir string // rendered result pages, written per submission

	FlashcardFile string // optional spreadsheet deck; empty disables
	SubmissionLog string // optional JSONL submission record; empty disables

	LogLevel  string
	LogFormat string // "json" or "pretty"

	// BannerPatterns are extra header/footer regexes stripped during
	// text normalization, on top of the built-in defaults.
	BannerPatterns []string

	CORSOrigins []string
}

// FromEnv reads configuration from environment variables with
// defaults. A .env file is loaded first when present.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		TestDir:        envOr("TEST_DIR", "./data/tests"),
		KeyDir:         envOr("KEY_DIR", "./data/keys"),
		AnswerDir:      envOr("ANSWER_DIR", "./data/answers"),
		FlashcardFile:  os.Getenv("FLASHCARD_FILE"),
		SubmissionLog:  os.Getenv("SUBMISSION_LOG"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "pretty"),
		BannerPatterns: csvOr("BANNER_PATTERNS", ""),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
