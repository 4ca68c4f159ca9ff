package exam

// Kind distinguishes how a question is answered.
type Kind string

const (
	MultipleChoice Kind = "multiple_choice"
	ShortAnswer    Kind = "short_answer"
)

// Question is one exam item extracted from a test document. Immutable
// once produced by Parse; Number is the join key against the answer map
// and submitted answers.
type Question struct {
	Number  int      `json:"number"`
	Text    string   `json:"text"`
	Kind    Kind     `json:"type"`
	Choices []string `json:"choices,omitempty"` // empty for short_answer, >=2 for multiple_choice
}

// ChoiceLetters are the valid answer letters, in display order.
var ChoiceLetters = []string{"A", "B", "C", "D", "E"}
