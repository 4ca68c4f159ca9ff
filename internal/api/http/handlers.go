// Package api exposes the quiz over HTTP: test listing, question
// forms, submission scoring and rendered result pages.
package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/examdesk/examdesk/internal/exam"
	"github.com/examdesk/examdesk/internal/flashcard"
	"github.com/examdesk/examdesk/internal/quiz"
	"github.com/examdesk/examdesk/internal/storage"
)

type Handlers struct {
	svc   *quiz.Service
	store *storage.FSStore
	deck  *flashcard.Deck // nil when no deck is configured
	log   zerolog.Logger
}

func NewHandlers(svc *quiz.Service, store *storage.FSStore, deck *flashcard.Deck, log zerolog.Logger) *Handlers {
	return &Handlers{svc: svc, store: store, deck: deck, log: log}
}

// Mount attaches all routes.
func (h *Handlers) Mount(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/test/{pdfName}", h.ShowTest)
	r.Post("/submit/{pdfName}", h.Submit)
	r.Get("/results/{file}", h.Results)

	r.Get("/api/flashcards", h.Flashcards)
	r.Get("/api/flashcards/{id}", h.FlashcardByID)
}

// Index lists the available test documents.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	tests, err := h.svc.ListTests()
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "could not list tests: "+err.Error())
		return
	}
	h.render(w, "index.html", map[string]any{"Tests": tests})
}

// ShowTest parses a test document and renders the question form.
func (h *Handlers) ShowTest(w http.ResponseWriter, r *http.Request) {
	pdfName := chi.URLParam(r, "pdfName")
	questions, err := h.svc.Questions(pdfName)
	if err != nil {
		h.questionError(w, pdfName, err)
		return
	}
	h.render(w, "test.html", map[string]any{
		"PDFName":   pdfName,
		"Questions": questions,
		"Letters":   exam.ChoiceLetters,
	})
}

// Submit scores a submission, writes the results page (and the answer
// key page if a key was found) as flat files, and renders the success
// view.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	pdfName := chi.URLParam(r, "pdfName")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "malformed form submission")
		return
	}

	submitted := map[string]string{}
	for field, values := range r.PostForm {
		if num, ok := strings.CutPrefix(field, "answer_"); ok && len(values) > 0 {
			submitted[num] = values[0]
		}
	}

	res, err := h.svc.Grade(pdfName, submitted)
	if err != nil {
		h.questionError(w, pdfName, err)
		return
	}
	keyFound := len(res.Answers) > 0

	stem := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))
	resultsFile := stem + "_answers.html"
	page, err := renderResultsPage(pdfName, res)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "could not render results: "+err.Error())
		return
	}
	if _, err := h.store.Put(resultsFile, strings.NewReader(page)); err != nil {
		h.renderError(w, http.StatusInternalServerError, "could not save results: "+err.Error())
		return
	}

	if keyFound {
		if keyPage, renderErr := renderKeyPage(res.KeyName, res.Answers); renderErr == nil {
			if _, putErr := h.store.Put(stem+"_answer_key.html", strings.NewReader(keyPage)); putErr != nil {
				h.log.Warn().Err(putErr).Msg("could not save answer key page")
			}
		}
	}

	h.render(w, "success.html", map[string]any{
		"PDFName":       pdfName,
		"AnswerFile":    resultsFile,
		"Summary":       res.Summary,
		"KeyFound":      keyFound,
		"KeyUnreadable": !keyFound && res.KeyName != "",
	})
}

// Results serves a previously written results page.
func (h *Handlers) Results(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	rc, err := h.store.Get(file)
	if err != nil {
		h.renderError(w, http.StatusNotFound, "results file not found")
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.Copy(w, rc)
}

// Flashcards serves the deck as JSON, optionally windowed by block.
func (h *Handlers) Flashcards(w http.ResponseWriter, r *http.Request) {
	if h.deck == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no flashcard deck configured"})
		return
	}
	cards, err := h.deck.Cards()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"error": err.Error(), "flashcards": []flashcard.Card{}, "total": 0})
		return
	}
	block := 0
	if v := r.URL.Query().Get("block"); v != "" {
		block, _ = strconv.Atoi(v)
	}
	writeJSON(w, http.StatusOK, flashcard.Page(cards, block))
}

func (h *Handlers) FlashcardByID(w http.ResponseWriter, r *http.Request) {
	if h.deck == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no flashcard deck configured"})
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid flashcard id"})
		return
	}
	card, err := h.deck.Card(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// questionError maps parse failures to responses: an unreadable
// document is a user-visible 500, a missing file a 404.
func (h *Handlers) questionError(w http.ResponseWriter, pdfName string, err error) {
	h.log.Error().Err(err).Str("test", pdfName).Msg("question extraction failed")
	switch {
	case errors.Is(err, exam.ErrDocumentUnreadable):
		h.renderError(w, http.StatusInternalServerError, "the document appears to be empty or unreadable")
	default:
		h.renderError(w, http.StatusNotFound, "test document not found")
	}
}
