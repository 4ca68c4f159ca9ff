package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/examdesk/examdesk/internal/answerkey"
	"github.com/examdesk/examdesk/internal/grading"
	"github.com/examdesk/examdesk/internal/quiz"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("template execution failed")
	}
}

func (h *Handlers) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, "error.html", map[string]any{"Message": msg}); err != nil {
		h.log.Error().Err(err).Msg("template execution failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// resultRow is one scored question on the saved results page.
type resultRow struct {
	Number        int
	UserAnswer    string
	CorrectAnswer string
	Status        string
}

// renderResultsPage produces the standalone HTML document written to
// the answer directory after each submission: score summary, the
// incorrect answers as their own table, the unanswered questions with
// their correct answers, the full answer key in "N. L." form, and
// every response.
func renderResultsPage(pdfName string, res quiz.GradeResult) (string, error) {
	summary := res.Summary
	var rows, incorrect, unanswered []resultRow
	var keyLines []string
	for _, r := range summary.SortedResults() {
		row := resultRow{
			Number:        r.Number,
			UserAnswer:    displayAnswer(r.UserAnswer),
			CorrectAnswer: displayAnswer(r.CorrectAnswer),
			Status:        string(r.Status),
		}
		rows = append(rows, row)
		switch r.Status {
		case grading.StatusIncorrect:
			incorrect = append(incorrect, row)
		case grading.StatusUnanswered:
			unanswered = append(unanswered, row)
		}
		if r.CorrectAnswer != "" {
			keyLines = append(keyLines, fmt.Sprintf("%d. %s.", r.Number, r.CorrectAnswer))
		}
	}

	keyFound := len(res.Answers) > 0
	var buf strings.Builder
	err := pages.ExecuteTemplate(&buf, "results.html", map[string]any{
		"PDFName":       pdfName,
		"Summary":       summary,
		"Rows":          rows,
		"Incorrect":     incorrect,
		"Unanswered":    unanswered,
		"KeyLines":      keyLines,
		"KeyFound":      keyFound,
		"KeyUnreadable": !keyFound && res.KeyName != "",
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderKeyPage produces the standalone answer key HTML document.
func renderKeyPage(keyName string, answers answerkey.AnswerMap) (string, error) {
	type keyRow struct {
		Number int
		Answer string
	}
	var rows []keyRow
	for _, n := range answers.SortedNumbers() {
		rows = append(rows, keyRow{Number: n, Answer: answers[n]})
	}
	var buf strings.Builder
	err := pages.ExecuteTemplate(&buf, "key.html", map[string]any{
		"KeyName": keyName,
		"Rows":    rows,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func displayAnswer(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
