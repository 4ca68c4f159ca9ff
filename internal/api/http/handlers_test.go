package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	api "github.com/examdesk/examdesk/internal/api/http"
	"github.com/examdesk/examdesk/internal/quiz"
	"github.com/examdesk/examdesk/internal/storage"
)

func newServer(t *testing.T) (*chi.Mux, *storage.FSStore) {
	t.Helper()
	testDir := t.TempDir()
	keyDir := t.TempDir()
	store, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := quiz.NewService(testDir, keyDir, nil, zerolog.Nop())

	r := chi.NewRouter()
	api.NewHandlers(svc, store, nil, zerolog.Nop()).Mount(r)
	return r, store
}

func TestIndexEmpty(t *testing.T) {
	r, _ := newServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No test documents found") {
		t.Errorf("body = %q, want empty-state message", rec.Body.String())
	}
}

func TestShowTestMissing(t *testing.T) {
	r, _ := newServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/nope.pdf", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestResultsServesStoredPage(t *testing.T) {
	r, store := newServer(t)
	if _, err := store.Put("demo_answers.html", strings.NewReader("<html>score</html>")); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/demo_answers.html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "score") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestResultsMissing(t *testing.T) {
	r, _ := newServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/none.html", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestFlashcardsWithoutDeck(t *testing.T) {
	r, _ := newServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/flashcards", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("want error field in response")
	}
}

func TestListTestsFiltersNonPDF(t *testing.T) {
	testDir := t.TempDir()
	for _, name := range []string{"2010_OpenExam.pdf", "notes.txt", "b.PDF"} {
		if err := os.WriteFile(filepath.Join(testDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	svc := quiz.NewService(testDir, t.TempDir(), nil, zerolog.Nop())

	tests, err := svc.ListTests()
	if err != nil {
		t.Fatal(err)
	}
	if len(tests) != 2 {
		t.Fatalf("tests = %v, want the two PDFs", tests)
	}
	if tests[0].Name != "2010_OpenExam.pdf" {
		t.Errorf("order = %v, want name-sorted", tests)
	}
}
