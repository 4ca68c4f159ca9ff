package answerkey

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	checkboxRe     = regexp.MustCompile(`\[[Xx✓☑]\s*\]\s*([A-E])\.`)
	questionNumRe  = regexp.MustCompile(`^(\d+)\.`)
	compactPairRe  = regexp.MustCompile(`(?i)(\d+)[\.\)]\s*([A-E])`)
	answerPrefixRe = regexp.MustCompile(`(?i)^\d+[\.\)\s]+[A-E]`)

	standalonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(\d+)[\.\)]\s*([A-E])[\.\)]?\s*$`),
		regexp.MustCompile(`(?i)^(\d+)\s+([A-E])\s*$`),
	}

	labeledPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)[\.\)]\s*Answer[:\s]+([A-E])`),
		regexp.MustCompile(`(?i)Question\s+(\d+)[:\s]+([A-E])`),
		regexp.MustCompile(`(?i)Q\s*(\d+)[:\s]+([A-E])`),
	}
)

const (
	// checkboxLookBack bounds the backward scan from a filled checkbox
	// to its question-number line.
	checkboxLookBack = 15
	// contextLookAhead bounds the forward scan from a question line to
	// a filled checkbox in full-question key documents.
	contextLookAhead = 10
	// maxCompactLineLen skips suspiciously long lines when harvesting
	// compact "1. A 2. B" sequences.
	maxCompactLineLen = 200
	// maxStandaloneLineLen: longer lines are question prose unless they
	// start with a number/letter answer prefix.
	maxStandaloneLineLen = 50
)

// headerLines are ignored by the standalone-line strategy.
var headerLines = map[string]bool{
	"questions answers": true,
	"answers":           true,
	"answer key":        true,
	"key":               true,
}

// extractCheckboxes finds filled checkbox markers ([X]/[✓]/[☑] L.) and
// attributes each to the nearest preceding question-number line.
func extractCheckboxes(lines []string) AnswerMap {
	answers := AnswerMap{}
	for i, line := range lines {
		if line == "" {
			continue
		}
		m := checkboxRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		letter := strings.ToUpper(m[1])
		lo := i - checkboxLookBack
		if lo < 0 {
			lo = 0
		}
		for j := lo; j <= i; j++ {
			qm := questionNumRe.FindStringSubmatch(lines[j])
			if qm == nil {
				continue
			}
			num, _ := strconv.Atoi(qm[1])
			if _, ok := answers[num]; !ok {
				answers[num] = letter
			}
			break
		}
	}
	return answers
}

// extractCompactLists harvests "N. L" pairs from answer-list lines such
// as "1. A 2. B 3. C". A line must hold at least two pairs to qualify;
// a lone pair embedded in prose is not an answer list, and single-pair
// lines belong to the standalone strategy with its length guard.
func extractCompactLists(lines []string) AnswerMap {
	answers := AnswerMap{}
	for _, line := range lines {
		if line == "" || len(line) > maxCompactLineLen {
			continue
		}
		pairs := compactPairRe.FindAllStringSubmatch(line, -1)
		if len(pairs) < 2 {
			continue
		}
		for _, m := range pairs {
			num, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			letter := strings.ToUpper(m[2])
			if _, ok := answers[num]; !ok {
				answers[num] = letter
			}
		}
	}
	return answers
}

// extractStandaloneLines matches lines holding exactly one answer pair
// ("3. B", "4) D", "3 B"). Long lines without an answer prefix are
// question prose and contribute nothing.
func extractStandaloneLines(lines []string) AnswerMap {
	answers := AnswerMap{}
	for _, line := range lines {
		if line == "" || headerLines[strings.ToLower(line)] {
			continue
		}
		if len(line) > maxStandaloneLineLen && !answerPrefixRe.MatchString(line) {
			continue
		}
		for _, re := range standalonePatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			num, _ := strconv.Atoi(m[1])
			letter := strings.ToUpper(m[2])
			if _, ok := answers[num]; !ok {
				answers[num] = letter
			}
			break
		}
	}
	return answers
}

// extractLabeledAnswers matches labeled forms like "Question 3: B",
// "Q3: B" and "3. Answer: B" anywhere within a line.
func extractLabeledAnswers(lines []string) AnswerMap {
	answers := AnswerMap{}
	for _, line := range lines {
		if line == "" {
			continue
		}
		for _, re := range labeledPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			num, _ := strconv.Atoi(m[1])
			letter := strings.ToUpper(m[2])
			if _, ok := answers[num]; !ok {
				answers[num] = letter
			}
			break
		}
	}
	return answers
}

// extractQuestionContext handles key documents that repeat the full
// questions: a question-number line followed within a few lines by a
// filled checkbox marking the correct choice.
func extractQuestionContext(lines []string) AnswerMap {
	answers := AnswerMap{}
	for i, line := range lines {
		qm := questionNumRe.FindStringSubmatch(line)
		if qm == nil {
			continue
		}
		num, _ := strconv.Atoi(qm[1])
		for j := i + 1; j < len(lines) && j <= i+contextLookAhead; j++ {
			next := lines[j]
			if questionNumRe.MatchString(next) {
				break
			}
			cm := checkboxRe.FindStringSubmatch(next)
			if cm == nil {
				continue
			}
			if _, ok := answers[num]; !ok {
				answers[num] = strings.ToUpper(cm[1])
			}
			break
		}
	}
	return answers
}
