package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/examdesk/examdesk/internal/api/http"
	"github.com/examdesk/examdesk/internal/config"
	"github.com/examdesk/examdesk/internal/exam"
	"github.com/examdesk/examdesk/internal/flashcard"
	"github.com/examdesk/examdesk/internal/logger"
	"github.com/examdesk/examdesk/internal/quiz"
	"github.com/examdesk/examdesk/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	norm := exam.NewNormalizer(cfg.BannerPatterns...)
	svc := quiz.NewService(cfg.TestDir, cfg.KeyDir, norm, log)
	if cfg.SubmissionLog != "" {
		svc.SetEventLog(quiz.NewEventLog(cfg.SubmissionLog))
	}

	store, err := storage.NewFSStore(cfg.AnswerDir)
	if err != nil {
		log.Fatal().Err(err).Msg("answer store")
	}

	var deck *flashcard.Deck
	if cfg.FlashcardFile != "" {
		deck = flashcard.NewDeck(cfg.FlashcardFile)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	api.NewHandlers(svc, store, deck, log).Mount(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("test_dir", cfg.TestDir).
		Str("key_dir", cfg.KeyDir).
		Msg("gateway listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
