package answerkey_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/examdesk/examdesk/internal/answerkey"
	"github.com/examdesk/examdesk/internal/pdf"
)

func docWithText(text string) *pdf.Document {
	return &pdf.Document{
		Path:  "key.pdf",
		Pages: []pdf.Page{{Number: 1, Text: text}},
	}
}

func extract(t *testing.T, text string) answerkey.AnswerMap {
	t.Helper()
	e := answerkey.NewExtractor(nil, zerolog.Nop())
	answers, _ := e.Extract(docWithText(text))
	return answers
}

func wantAnswers(t *testing.T, got answerkey.AnswerMap, want map[int]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for num, letter := range want {
		if got[num] != letter {
			t.Errorf("answer %d = %q, want %q", num, got[num], letter)
		}
	}
}

func TestExtractCheckboxKey(t *testing.T) {
	text := `1. What is two plus two?
[ ] A. three
[X] B. four
[ ] C. five

2. Which planet is red?
[✓] D. Mars`

	wantAnswers(t, extract(t, text), map[int]string{1: "B", 2: "D"})
}

func TestExtractCompactList(t *testing.T) {
	wantAnswers(t, extract(t, "1. A 2. B 3. C 4. D"),
		map[int]string{1: "A", 2: "B", 3: "C", 4: "D"})
}

func TestExtractStandaloneLines(t *testing.T) {
	text := "Questions Answers\n3. B\n4) D\n5 E"
	wantAnswers(t, extract(t, text), map[int]string{3: "B", 4: "D", 5: "E"})
}

func TestExtractLabeledAnswers(t *testing.T) {
	text := "Question 7: C\nQ8: A\n9. Answer: E"
	wantAnswers(t, extract(t, text), map[int]string{7: "C", 8: "A", 9: "E"})
}

func TestExtractLongProseContributesNothing(t *testing.T) {
	text := "This is a long explanatory sentence that mentions option but names no answer."
	wantAnswers(t, extract(t, text), map[int]string{})
}

func TestExtractEmbeddedPairInProseIgnored(t *testing.T) {
	// One digit-letter pair inside running text is not an answer list.
	text := "this sentence mentions 3. B within prose and is 80 chars long exactly padded out here"
	wantAnswers(t, extract(t, text), map[int]string{})
}

func TestExtractStrategyPrecedence(t *testing.T) {
	// The filled checkbox attributes A to question 2; the later
	// conflicting "2. C" list entry must not overwrite it.
	text := `2. Some question
[X] A. first option
2. C`

	wantAnswers(t, extract(t, text), map[int]string{2: "A"})
}

func TestExtractRejectsInvalidLetters(t *testing.T) {
	// F is outside the valid choice range.
	wantAnswers(t, extract(t, "3. F"), map[int]string{})
}

func TestExtractEmptyDocument(t *testing.T) {
	e := answerkey.NewExtractor(nil, zerolog.Nop())
	answers, diag := e.Extract(docWithText("   "))
	if len(answers) != 0 {
		t.Errorf("got %v, want empty map", answers)
	}
	if diag.Found != 0 {
		t.Errorf("diag.Found = %d, want 0", diag.Found)
	}
}

func TestSortedNumbers(t *testing.T) {
	m := answerkey.AnswerMap{3: "A", 1: "B", 2: "C"}
	got := m.SortedNumbers()
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedNumbers = %v, want %v", got, want)
		}
	}
}
