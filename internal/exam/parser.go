package exam

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrDocumentUnreadable is returned when a source document contains no
// usable text after normalization.
var ErrDocumentUnreadable = errors.New("document is empty or unreadable")

var (
	questionRe       = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)
	choiceBracketRe  = regexp.MustCompile(`^\[\s*\]\s*([A-E])\.\s*(.+)$`)
	choiceSimpleRe   = regexp.MustCompile(`^([A-E])[\)\.]\s*(.+)$`)
	inlineMarkRe     = regexp.MustCompile(`\[\s*\]\s*[A-E]\.`)
	inlineChoiceRe   = regexp.MustCompile(`\[\s*\]\s*([A-E])\.\s*([^\[\]]+)`)
	inlineStripRe    = regexp.MustCompile(`\[\s*\]\s*[A-E]\.[^\[\]]+`)
	checkboxMarkupRe = regexp.MustCompile(`\[\s*\]`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
)

const (
	// lookAheadWindow bounds the multi-line scan for question text and
	// choices following a question-number line.
	lookAheadWindow = 30
	// maxConsecutiveNonChoice ends choice collection once this many
	// non-choice lines are seen in a row after the first choice.
	maxConsecutiveNonChoice = 3
	// maxChoiceLen rejects implausibly long choice text.
	maxChoiceLen = 500
)

// Parser converts normalized exam text into an ordered list of typed
// questions. It handles both inline-choice layouts
// ("3. Question [ ] A. foo [ ] B. bar") and multi-line layouts where
// choices follow on their own lines.
type Parser struct {
	norm *Normalizer
}

func NewParser(norm *Normalizer) *Parser {
	if norm == nil {
		norm = NewNormalizer()
	}
	return &Parser{norm: norm}
}

// Parse extracts questions from raw document text. The returned slice
// has unique question numbers, sorted ascending, with duplicates
// resolved by first occurrence. It returns ErrDocumentUnreadable when
// the text is empty or whitespace-only after normalization.
func (p *Parser) Parse(raw string) ([]Question, error) {
	cleaned := p.norm.Normalize(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, ErrDocumentUnreadable
	}

	lines := p.norm.FilterLines(cleaned)

	var questions []Question
	for i := 0; i < len(lines); i++ {
		m := questionRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil || num < 1 {
			continue
		}

		textParts := []string{strings.TrimSpace(m[2])}
		var choices []string

		if inlineMarkRe.MatchString(lines[i]) || strings.Contains(lines[i], "[]") {
			choices = parseInlineChoices(lines[i], p.norm)
			textParts[0] = strings.TrimSpace(inlineStripRe.ReplaceAllString(textParts[0], ""))
		} else {
			more, cs := p.scanFollowingLines(lines, i)
			textParts = append(textParts, more...)
			choices = cs
		}

		text := strings.Join(textParts, "\n")
		text = p.norm.Normalize(text)
		text = checkboxMarkupRe.ReplaceAllString(text, "")
		text = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(text, " "))

		q := Question{Number: num, Text: text}
		if len(choices) >= 2 {
			q.Kind = MultipleChoice
			q.Choices = choices
		} else {
			q.Kind = ShortAnswer
		}
		questions = append(questions, q)
	}

	return dedupeAndSort(questions), nil
}

// parseInlineChoices pulls "[ ] A. text" tokens out of a single line,
// in appearance order.
func parseInlineChoices(line string, norm *Normalizer) []string {
	var choices []string
	for _, m := range inlineChoiceRe.FindAllStringSubmatch(line, -1) {
		text := norm.Normalize(strings.TrimSpace(m[2]))
		if text != "" {
			choices = append(choices, text)
		}
	}
	return choices
}

// scanFollowingLines collects additional question-text lines and then
// choice lines after lines[start]. The scan stops unconditionally at
// the next question-number line, and otherwise after
// maxConsecutiveNonChoice trailing non-choice lines once choices have
// started.
func (p *Parser) scanFollowingLines(lines []string, start int) (textParts, choices []string) {
	foundChoice := false
	nonChoice := 0

	for j := start + 1; j < len(lines) && j < start+lookAheadWindow; j++ {
		line := lines[j]

		if questionRe.MatchString(line) {
			break
		}

		cm := choiceBracketRe.FindStringSubmatch(line)
		if cm == nil {
			cm = choiceSimpleRe.FindStringSubmatch(line)
		}

		if cm != nil {
			foundChoice = true
			text := p.norm.Normalize(strings.TrimSpace(cm[2]))
			if text != "" && len(text) < maxChoiceLen {
				choices = append(choices, text)
				nonChoice = 0
			}
			continue
		}

		if foundChoice {
			nonChoice++
			if nonChoice > maxConsecutiveNonChoice {
				break
			}
			continue
		}

		if strings.TrimSpace(line) != "" {
			textParts = append(textParts, strings.TrimSpace(line))
		}
	}
	return textParts, choices
}

// dedupeAndSort keeps the first occurrence of each question number and
// orders the result ascending.
func dedupeAndSort(qs []Question) []Question {
	seen := make(map[int]bool, len(qs))
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if seen[q.Number] {
			continue
		}
		seen[q.Number] = true
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
