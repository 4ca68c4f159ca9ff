package answerkey

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/examdesk/examdesk/internal/xlsx"
)

// Recognized column labels, compared case-insensitively after
// trimming.
var (
	questionLabels = map[string]bool{
		"question": true, "questions": true, "q": true, "q#": true,
		"question #": true, "question#": true, "num": true, "number": true,
		"#": true,
	}
	answerLabels = map[string]bool{
		"answer": true, "answers": true, "a": true, "ans": true,
		"key": true, "correct": true, "correct answer": true,
		"correct_answer": true,
	}
)

var (
	digitRunRe = regexp.MustCompile(`(\d+)`)
	letterRe   = regexp.MustCompile(`([A-E])`)
)

// SpreadsheetExtractor builds answer maps from tabular key files with
// flexible column naming.
type SpreadsheetExtractor struct {
	log zerolog.Logger
}

func NewSpreadsheetExtractor(log zerolog.Logger) *SpreadsheetExtractor {
	return &SpreadsheetExtractor{log: log}
}

// ExtractFile reads a workbook and extracts its answer map.
func (s *SpreadsheetExtractor) ExtractFile(path string) (AnswerMap, Diagnostics, error) {
	table, err := xlsx.ReadFile(path)
	if err != nil {
		return AnswerMap{}, Diagnostics{Method: "spreadsheet"}, err
	}
	answers, diag := s.Extract(table)
	return answers, diag, nil
}

// Extract maps rows to answers. Column selection prefers recognized
// labels; with none recognized and at least two columns present, the
// first column is read as question numbers and the second as answers.
// Rows that fail either derivation are skipped. A table with fewer
// than two columns yields an empty map (ErrColumnsMissing condition,
// reported but not fatal).
func (s *SpreadsheetExtractor) Extract(table *xlsx.Table) (AnswerMap, Diagnostics) {
	diag := Diagnostics{Method: "spreadsheet", ByStrategy: map[string]int{}}
	answers := AnswerMap{}
	if table == nil {
		return answers, diag
	}

	qCol, aCol := "", ""
	for _, col := range table.Columns {
		lower := strings.ToLower(strings.TrimSpace(col))
		switch {
		case questionLabels[lower]:
			qCol = col
		case answerLabels[lower]:
			aCol = col
		}
	}
	if qCol == "" || aCol == "" {
		if len(table.Columns) < 2 {
			s.log.Warn().
				Int("columns", len(table.Columns)).
				Msg("spreadsheet key needs at least two columns")
			return answers, diag
		}
		qCol, aCol = table.Columns[0], table.Columns[1]
		s.log.Debug().Str("question_col", qCol).Str("answer_col", aCol).
			Msg("no recognized labels, using first two columns")
	}

	skipped := 0
	for _, row := range table.Rows {
		num, ok := questionNumber(row[qCol])
		if !ok {
			skipped++
			continue
		}
		letter, ok := answerLetter(row[aCol])
		if !ok {
			skipped++
			continue
		}
		answers[num] = letter
	}
	diag.Found = len(answers)
	diag.ByStrategy["rows"] = len(answers)

	s.log.Info().
		Int("found", diag.Found).
		Int("skipped_rows", skipped).
		Str("sample", sampleEntries(answers, 10)).
		Msg("answer key extracted from spreadsheet")
	return answers, diag
}

// questionNumber accepts numeric cells directly ("3", "3.0") or pulls
// the first digit run out of textual cells ("Q12").
func questionNumber(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		n := int(f)
		if n > 0 {
			return n, true
		}
		return 0, false
	}
	m := digitRunRe.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// answerLetter uppercases the cell and takes the first A-E character.
func answerLetter(cell string) (string, bool) {
	cell = strings.ToUpper(strings.TrimSpace(cell))
	if cell == "" {
		return "", false
	}
	m := letterRe.FindStringSubmatch(cell)
	if m == nil {
		return "", false
	}
	return m[1], true
}
