// Package answerkey extracts question-number to answer-letter mappings
// from key documents: PDF keys with highlighted or checked answers,
// plain answer lists, and companion spreadsheets. It also resolves
// which key file belongs to a given test document.
package answerkey

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/examdesk/examdesk/internal/exam"
	"github.com/examdesk/examdesk/internal/pdf"
)

// AnswerMap maps a question number to its correct answer letter. Values
// are always one of A-E; unparseable letters are never inserted.
type AnswerMap map[int]string

// SortedNumbers returns the question numbers in ascending order.
func (m AnswerMap) SortedNumbers() []int {
	nums := make([]int, 0, len(m))
	for n := range m {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// ErrNoKeyFound reports that no key file could be matched to a test
// document. Callers proceed without scoring.
var ErrNoKeyFound = errors.New("no matching key file found")

// ErrColumnsMissing reports a spreadsheet with fewer than two columns.
var ErrColumnsMissing = errors.New("spreadsheet needs at least two columns")

// Diagnostics describes how an extraction went, for operator logging.
type Diagnostics struct {
	Method     string         // "highlights", "text-patterns" or "spreadsheet"
	Found      int            // total answers extracted
	ByStrategy map[string]int // answers contributed per strategy pass
}

var validLetterRe = regexp.MustCompile(`^[A-E]$`)

// strategy is one independent heuristic pass over key-document lines,
// producing a partial answer map. Strategies never mutate shared state.
type strategy struct {
	name string
	run  func(lines []string) AnswerMap
}

// textStrategies run in precedence order; on collision the earlier
// strategy's answer stands.
var textStrategies = []strategy{
	{"checkbox", extractCheckboxes},
	{"compact-list", extractCompactLists},
	{"standalone", extractStandaloneLines},
	{"labeled", extractLabeledAnswers},
	{"question-context", extractQuestionContext},
}

// Extractor pulls answer maps out of PDF key documents.
type Extractor struct {
	norm *exam.Normalizer
	log  zerolog.Logger
}

func NewExtractor(norm *exam.Normalizer, log zerolog.Logger) *Extractor {
	if norm == nil {
		norm = exam.NewNormalizer()
	}
	return &Extractor{norm: norm, log: log}
}

// Extract runs every extraction strategy over the key document and
// merges the partial results by precedence: text strategies in order
// with first-writer-wins, then highlight geometry overriding any
// conflicting text result. A malformed document yields an empty map,
// never an error.
func (e *Extractor) Extract(doc *pdf.Document) (AnswerMap, Diagnostics) {
	diag := Diagnostics{Method: "text-patterns", ByStrategy: map[string]int{}}
	answers := AnswerMap{}
	if doc == nil {
		return answers, diag
	}

	text := e.norm.Normalize(doc.Text())
	if strings.TrimSpace(text) == "" {
		e.log.Warn().Str("path", doc.Path).Msg("key document is empty or unreadable")
		return answers, diag
	}
	lines := splitTrimmed(text)

	for _, s := range textStrategies {
		partial := s.run(lines)
		added := 0
		for num, letter := range partial {
			if !validLetterRe.MatchString(letter) {
				continue
			}
			if _, exists := answers[num]; exists {
				continue
			}
			answers[num] = letter
			added++
		}
		diag.ByStrategy[s.name] = added
	}

	// Highlight geometry takes precedence over every text pattern.
	highlighted := extractHighlights(doc)
	for num, letter := range highlighted {
		answers[num] = letter
	}
	diag.ByStrategy["highlight"] = len(highlighted)
	if len(highlighted) > 0 {
		diag.Method = "highlights"
	}
	diag.Found = len(answers)

	e.logDiagnostics(doc.Path, answers, diag)
	return answers, diag
}

func (e *Extractor) logDiagnostics(path string, answers AnswerMap, diag Diagnostics) {
	ev := e.log.Info().Str("path", path).Str("method", diag.Method).Int("found", diag.Found)
	for name, n := range diag.ByStrategy {
		if n > 0 {
			ev = ev.Int("strategy_"+name, n)
		}
	}
	ev.Str("sample", sampleEntries(answers, 10)).Msg("answer key extracted")
}

// sampleEntries formats up to max entries for diagnostic logs.
func sampleEntries(answers AnswerMap, max int) string {
	nums := make([]int, 0, len(answers))
	for n := range answers {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	if len(nums) > max {
		nums = nums[:max]
	}
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, strconv.Itoa(n)+":"+answers[n])
	}
	return strings.Join(parts, " ")
}

func splitTrimmed(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSpace(l)
	}
	return out
}
