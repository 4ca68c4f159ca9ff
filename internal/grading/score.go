// Package grading scores submitted answers against an extracted answer
// key.
package grading

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/examdesk/examdesk/internal/answerkey"
	"github.com/examdesk/examdesk/internal/exam"
)

// Status classifies one graded question.
type Status string

const (
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
	StatusUnanswered Status = "unanswered"
	StatusNoKey      Status = "no_key"
)

// Result is the outcome for a single question.
type Result struct {
	Number        int    `json:"number"`
	Status        Status `json:"status"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// Summary aggregates a full submission.
type Summary struct {
	Total           int            `json:"total"`
	Correct         int            `json:"correct"`
	Incorrect       int            `json:"incorrect"`
	Unanswered      int            `json:"unanswered"`
	ScorePercentage float64        `json:"score_percentage"`
	Results         map[int]Result `json:"results"`
}

var leadingLetterRe = regexp.MustCompile(`(?i)^([A-E])`)

// Score grades submitted answers (keyed by question-number string)
// against the answer key. Multiple-choice answers compare by letter,
// case-insensitively; short answers compare by trimmed
// case-insensitive equality. Questions with no key entry are no_key and
// never count against the percentage denominator's correct tally. The
// percentage is correct/total*100 rounded to two decimals, 0 when the
// question list is empty. Scoring is deterministic: no state survives a
// call.
func Score(submitted map[string]string, key answerkey.AnswerMap, questions []exam.Question) Summary {
	s := Summary{Results: make(map[int]Result, len(questions))}
	s.Total = len(questions)

	for _, q := range questions {
		userAnswer := strings.TrimSpace(submitted[strconv.Itoa(q.Number)])
		correctAnswer := key[q.Number]

		res := Result{Number: q.Number, UserAnswer: userAnswer, CorrectAnswer: correctAnswer}
		switch {
		case userAnswer == "":
			res.Status = StatusUnanswered
			s.Unanswered++
		case correctAnswer == "":
			res.Status = StatusNoKey
		case q.Kind == exam.MultipleChoice:
			if letter, ok := submittedLetter(userAnswer); ok && letter == strings.ToUpper(correctAnswer) {
				res.Status = StatusCorrect
				res.UserAnswer = letter
				s.Correct++
			} else {
				res.Status = StatusIncorrect
				if ok {
					res.UserAnswer = letter
				}
				s.Incorrect++
			}
		default:
			if strings.EqualFold(userAnswer, strings.TrimSpace(correctAnswer)) {
				res.Status = StatusCorrect
				s.Correct++
			} else {
				res.Status = StatusIncorrect
				s.Incorrect++
			}
		}
		s.Results[q.Number] = res
	}

	if s.Total > 0 {
		s.ScorePercentage = math.Round(float64(s.Correct)/float64(s.Total)*100*100) / 100
	}
	return s
}

// submittedLetter extracts the choice letter from a submission,
// accepting both bare letters and fuller forms like "B. mitochondria".
func submittedLetter(answer string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(answer))
	if len(upper) == 1 && upper >= "A" && upper <= "E" {
		return upper, true
	}
	if m := leadingLetterRe.FindStringSubmatch(upper); m != nil {
		return m[1], true
	}
	return "", false
}

// SortedResults returns results ordered by question number, for
// rendering.
func (s Summary) SortedResults() []Result {
	out := make([]Result, 0, len(s.Results))
	for _, r := range s.Results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
