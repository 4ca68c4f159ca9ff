package exam_test

import (
	"errors"
	"testing"

	"github.com/examdesk/examdesk/internal/exam"
)

const multiLineDoc = `Open Exam

1. What is the capital of France?
[ ] A. London
[ ] B. Paris
[ ] C. Rome

2. Describe the water cycle in your own words.

Page 1
`

func TestParseMultiLineLayout(t *testing.T) {
	p := exam.NewParser(nil)
	qs, err := p.Parse(multiLineDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}

	q1 := qs[0]
	if q1.Number != 1 || q1.Kind != exam.MultipleChoice {
		t.Errorf("q1 = %+v, want number 1 multiple_choice", q1)
	}
	if len(q1.Choices) != 3 {
		t.Fatalf("q1 choices = %v, want 3", q1.Choices)
	}
	if q1.Choices[1] != "Paris" {
		t.Errorf("q1 choice B = %q, want Paris", q1.Choices[1])
	}

	q2 := qs[1]
	if q2.Number != 2 || q2.Kind != exam.ShortAnswer {
		t.Errorf("q2 = %+v, want number 2 short_answer", q2)
	}
	if len(q2.Choices) != 0 {
		t.Errorf("q2 choices = %v, want none", q2.Choices)
	}
}

func TestParseInlineChoices(t *testing.T) {
	p := exam.NewParser(nil)
	qs, err := p.Parse("3. Pick a color [ ] A. red [ ] B. blue [ ] C. green")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.Kind != exam.MultipleChoice {
		t.Fatalf("kind = %s, want multiple_choice", q.Kind)
	}
	want := []string{"red", "blue", "green"}
	if len(q.Choices) != len(want) {
		t.Fatalf("choices = %v, want %v", q.Choices, want)
	}
	for i := range want {
		if q.Choices[i] != want[i] {
			t.Errorf("choice %d = %q, want %q", i, q.Choices[i], want[i])
		}
	}
	if q.Text != "Pick a color" {
		t.Errorf("text = %q, want choices stripped", q.Text)
	}
}

func TestParseSingleChoiceIsShortAnswer(t *testing.T) {
	p := exam.NewParser(nil)
	qs, err := p.Parse("4. Lone option question\n[ ] A. only option")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(qs) != 1 || qs[0].Kind != exam.ShortAnswer {
		t.Errorf("got %+v, want one short_answer question", qs)
	}
}

func TestParseDedupesAndSorts(t *testing.T) {
	doc := `5. Later question
2. First version of two
7. Last question
2. Second version of two, must be ignored`

	p := exam.NewParser(nil)
	qs, err := p.Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	wantNums := []int{2, 5, 7}
	for i, q := range qs {
		if q.Number != wantNums[i] {
			t.Errorf("question %d number = %d, want %d", i, q.Number, wantNums[i])
		}
	}
	if qs[0].Text != "First version of two" {
		t.Errorf("duplicate resolution kept %q, want first occurrence", qs[0].Text)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	p := exam.NewParser(nil)
	for _, raw := range []string{"", "   \n\n  ", "Open Exam\nPage 1"} {
		if _, err := p.Parse(raw); !errors.Is(err, exam.ErrDocumentUnreadable) {
			t.Errorf("Parse(%q) err = %v, want ErrDocumentUnreadable", raw, err)
		}
	}
}

func TestNormalizeStripsBanners(t *testing.T) {
	n := exam.NewNormalizer()
	got := n.Normalize("ANSWER KEY\nsome content\nPage 3")
	if got != "some content" {
		t.Errorf("Normalize = %q, want banners stripped", got)
	}
}

func TestNormalizeExtraPatterns(t *testing.T) {
	n := exam.NewNormalizer(`District\s+\d+`)
	got := n.Normalize("District 12 content here")
	if got != "content here" {
		t.Errorf("Normalize = %q, want extra pattern applied", got)
	}
}

func TestFilterLinesDropsPageNumbers(t *testing.T) {
	n := exam.NewNormalizer()
	lines := n.FilterLines("1. A question\n\n12\nmore text")
	want := []string{"1. A question", "", "more text"}
	if len(lines) != len(want) {
		t.Fatalf("FilterLines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
