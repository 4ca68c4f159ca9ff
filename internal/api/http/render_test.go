package api

import (
	"strings"
	"testing"

	"github.com/examdesk/examdesk/internal/answerkey"
	"github.com/examdesk/examdesk/internal/exam"
	"github.com/examdesk/examdesk/internal/grading"
	"github.com/examdesk/examdesk/internal/quiz"
)

func gradedResult(t *testing.T) quiz.GradeResult {
	t.Helper()
	questions := []exam.Question{
		{Number: 1, Kind: exam.MultipleChoice, Choices: []string{"x", "y"}},
		{Number: 2, Kind: exam.MultipleChoice, Choices: []string{"x", "y"}},
		{Number: 3, Kind: exam.MultipleChoice, Choices: []string{"x", "y"}},
	}
	key := answerkey.AnswerMap{1: "A", 2: "B", 3: "C"}
	submitted := map[string]string{"1": "A", "2": "D"}
	return quiz.GradeResult{
		Summary:   grading.Score(submitted, key, questions),
		Questions: questions,
		Answers:   key,
		KeyName:   "demo_AnswerKey.xlsx",
	}
}

func TestRenderResultsPageSections(t *testing.T) {
	page, err := renderResultsPage("demo.pdf", gradedResult(t))
	if err != nil {
		t.Fatalf("renderResultsPage: %v", err)
	}

	for _, want := range []string{
		"Incorrect Answers",
		"Unanswered",
		"Question 3: correct answer C",
		"1. A.", "2. B.", "3. C.",
		"All Responses",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("results page missing %q", want)
		}
	}
	if strings.Contains(page, "could not be read") {
		t.Error("results page shows the unreadable-key banner for a usable key")
	}
}

func TestRenderResultsPageUnreadableKey(t *testing.T) {
	questions := []exam.Question{{Number: 1, Kind: exam.ShortAnswer}}
	res := quiz.GradeResult{
		Summary:   grading.Score(nil, nil, questions),
		Questions: questions,
		Answers:   answerkey.AnswerMap{},
		KeyName:   "demo_AnswerKey.xlsx",
	}

	page, err := renderResultsPage("demo.pdf", res)
	if err != nil {
		t.Fatalf("renderResultsPage: %v", err)
	}
	if !strings.Contains(page, "could not be read") {
		t.Error("results page missing the unreadable-key banner")
	}
	if strings.Contains(page, "No answer key was found") {
		t.Error("results page shows the no-key banner for a resolved key")
	}
}

func TestRenderResultsPageNoKey(t *testing.T) {
	questions := []exam.Question{{Number: 1, Kind: exam.ShortAnswer}}
	res := quiz.GradeResult{
		Summary:   grading.Score(nil, nil, questions),
		Questions: questions,
		Answers:   answerkey.AnswerMap{},
	}

	page, err := renderResultsPage("demo.pdf", res)
	if err != nil {
		t.Fatalf("renderResultsPage: %v", err)
	}
	if !strings.Contains(page, "No answer key was found") {
		t.Error("results page missing the no-key banner")
	}
}

func TestRenderKeyPageSorted(t *testing.T) {
	page, err := renderKeyPage("demo_AnswerKey.xlsx", answerkey.AnswerMap{2: "B", 10: "D", 1: "A"})
	if err != nil {
		t.Fatalf("renderKeyPage: %v", err)
	}
	first := strings.Index(page, "<td>1</td>")
	second := strings.Index(page, "<td>2</td>")
	tenth := strings.Index(page, "<td>10</td>")
	if first < 0 || second < 0 || tenth < 0 || !(first < second && second < tenth) {
		t.Errorf("key page rows out of order: 1 at %d, 2 at %d, 10 at %d", first, second, tenth)
	}
}
