package pdf

import (
	"strings"
	"testing"
)

func TestInterpretContentText(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 700 Td
(Hello) Tj
0 -14 Td
(World) Tj
ET`)

	text, chars, rects := interpretContent(stream)
	if text != "Hello\nWorld" {
		t.Errorf("text = %q, want two lines", text)
	}
	if len(chars) != 10 {
		t.Fatalf("got %d chars, want 10", len(chars))
	}
	if len(rects) != 0 {
		t.Errorf("got %d rects, want none", len(rects))
	}

	h := chars[0]
	if h.Text != "H" || h.X0 != 72 || h.Bottom != 700 {
		t.Errorf("first char = %+v, want H at (72, 700)", h)
	}
	if h.Top <= h.Bottom {
		t.Errorf("char Top %v not above Bottom %v", h.Top, h.Bottom)
	}

	w := chars[5]
	if w.Text != "W" || w.Bottom != 686 {
		t.Errorf("sixth char = %+v, want W one line down", w)
	}
}

func TestInterpretContentTJSpacing(t *testing.T) {
	stream := []byte(`BT
100 500 Td
[(Open) -250 (Exam)] TJ
ET`)

	text, _, _ := interpretContent(stream)
	if text != "Open Exam" {
		t.Errorf("text = %q, want gap rendered as space", text)
	}
}

func TestInterpretContentFilledRect(t *testing.T) {
	stream := []byte(`1 0.92 0.2 rg
100 480 60 14 re
f`)

	_, _, rects := interpretContent(stream)
	if len(rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(rects))
	}
	r := rects[0]
	if r.X0 != 100 || r.X1 != 160 || r.Bottom != 480 || r.Top != 494 {
		t.Errorf("rect = %+v, want 100..160 x 480..494", r)
	}
	if r.Fill.R != 1 || r.Fill.G != 0.92 || r.Fill.B != 0.2 {
		t.Errorf("fill = %+v, want the yellow set before the path", r.Fill)
	}
}

func TestInterpretContentUnpaintedRectDropped(t *testing.T) {
	stream := []byte(`0 0 1 rg
10 10 5 5 re
n`)

	_, _, rects := interpretContent(stream)
	if len(rects) != 0 {
		t.Errorf("got %v, want no-op path discarded", rects)
	}
}

func TestInterpretContentOctalEscapes(t *testing.T) {
	stream := []byte(`BT (A\051B) Tj ET`)

	text, _, _ := interpretContent(stream)
	if text != "A)B" {
		t.Errorf("text = %q, want octal escape decoded", text)
	}
}

func TestTokenizeSkipsDictionariesAndComments(t *testing.T) {
	stream := []byte(`% comment line
<< /Type /Page >> BT (kept) Tj ET`)

	text, _, _ := interpretContent(stream)
	if !strings.Contains(text, "kept") {
		t.Errorf("text = %q, want string content preserved", text)
	}
	if strings.Contains(text, "comment") {
		t.Errorf("text = %q, comment leaked into output", text)
	}
}
