package pdf

import (
	"strings"
)

// interpretContent walks a page content stream and accumulates shown
// text, per-character positions, and filled rectangles. Only the small
// operator subset that matters for exam papers is interpreted: text
// showing and positioning, rectangle paths, and non-stroking color.
func interpretContent(data []byte) (string, []Char, []Rect) {
	in := &interp{
		fontSize: 12,
		leading:  14.4,
	}
	toks := tokenize(data)

	var operands []token
	for _, t := range toks {
		if t.kind != tokOperator {
			operands = append(operands, t)
			continue
		}
		in.apply(t.str, operands)
		operands = operands[:0]
	}
	return in.text.String(), in.chars, in.rects
}

type interp struct {
	text  strings.Builder
	chars []Char
	rects []Rect

	fill    RGB
	pending []Rect // rectangles awaiting a paint operator

	fontSize float64
	leading  float64
	lineX    float64
	lineY    float64
	curX     float64
	curY     float64
	lastY    float64
	emitted  bool
}

func (in *interp) apply(op string, operands []token) {
	switch op {
	case "rg":
		if c, ok := rgbOperands(operands, 3); ok {
			in.fill = c
		}
	case "g":
		if c, ok := rgbOperands(operands, 1); ok {
			in.fill = c
		}
	case "k":
		if c, ok := rgbOperands(operands, 4); ok {
			in.fill = c
		}
	case "sc", "scn":
		// Only plain numeric color operands; pattern names are ignored.
		if c, ok := rgbOperands(numericOnly(operands), len(numericOnly(operands))); ok {
			in.fill = c
		}
	case "re":
		if nums, ok := lastNumbers(operands, 4); ok {
			x, y, w, h := nums[0], nums[1], nums[2], nums[3]
			in.pending = append(in.pending, Rect{
				X0:     x,
				X1:     x + w,
				Bottom: y,
				Top:    y + h,
			})
		}
	case "f", "F", "f*", "b", "b*", "B", "B*":
		for _, r := range in.pending {
			r.Fill = in.fill
			in.rects = append(in.rects, r)
		}
		in.pending = in.pending[:0]
	case "n", "S", "s", "W", "W*":
		if op == "n" || op == "S" || op == "s" {
			in.pending = in.pending[:0]
		}
	case "BT":
		in.lineX, in.lineY = 0, 0
		in.curX, in.curY = 0, 0
	case "Tf":
		if nums, ok := lastNumbers(operands, 1); ok && nums[0] > 0 {
			in.fontSize = nums[0]
			in.leading = nums[0] * 1.2
		}
	case "TL":
		if nums, ok := lastNumbers(operands, 1); ok {
			in.leading = nums[0]
		}
	case "Tm":
		if nums, ok := lastNumbers(operands, 6); ok {
			in.lineX, in.lineY = nums[4], nums[5]
			in.moveTo(in.lineX, in.lineY)
		}
	case "Td":
		if nums, ok := lastNumbers(operands, 2); ok {
			in.lineX += nums[0]
			in.lineY += nums[1]
			in.moveTo(in.lineX, in.lineY)
		}
	case "TD":
		if nums, ok := lastNumbers(operands, 2); ok {
			in.leading = -nums[1]
			in.lineX += nums[0]
			in.lineY += nums[1]
			in.moveTo(in.lineX, in.lineY)
		}
	case "T*":
		in.lineY -= in.leading
		in.moveTo(in.lineX, in.lineY)
	case "Tj":
		if s, ok := lastString(operands); ok {
			in.show(s)
		}
	case "'":
		in.lineY -= in.leading
		in.moveTo(in.lineX, in.lineY)
		if s, ok := lastString(operands); ok {
			in.show(s)
		}
	case "TJ":
		for _, t := range operands {
			switch t.kind {
			case tokString:
				in.show(t.str)
			case tokNumber:
				// Negative adjustments widen spacing; large gaps
				// read as a word break.
				if t.num < -180 {
					in.show(" ")
				}
			}
		}
	}
}

// moveTo repositions the text cursor, emitting a line or word break
// into the assembled text when the position jump warrants one.
func (in *interp) moveTo(x, y float64) {
	if in.emitted {
		if y != in.lastY {
			in.text.WriteByte('\n')
		} else if x > in.curX {
			in.text.WriteByte(' ')
		}
	}
	in.curX, in.curY = x, y
}

// show emits a decoded string at the current cursor, recording one
// Char per rune. Glyph widths are approximated at half the font size,
// which is close enough for the nearest-neighbor matching done on key
// documents.
func (in *interp) show(s string) {
	if s == "" {
		return
	}
	w := in.fontSize * 0.5
	for _, r := range s {
		in.chars = append(in.chars, Char{
			Text:   string(r),
			X0:     in.curX,
			X1:     in.curX + w,
			Bottom: in.curY,
			Top:    in.curY + in.fontSize,
		})
		in.curX += w
	}
	in.text.WriteString(s)
	in.lastY = in.curY
	in.emitted = true
}

// rgbOperands converts 1 (gray), 3 (RGB) or 4 (CMYK) trailing numeric
// operands into an RGB color.
func rgbOperands(operands []token, n int) (RGB, bool) {
	nums, ok := lastNumbers(operands, n)
	if !ok {
		return RGB{}, false
	}
	switch n {
	case 1:
		return RGB{nums[0], nums[0], nums[0]}, true
	case 3:
		return RGB{nums[0], nums[1], nums[2]}, true
	case 4:
		c, m, y, k := nums[0], nums[1], nums[2], nums[3]
		return RGB{(1 - c) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k)}, true
	}
	return RGB{}, false
}

func numericOnly(operands []token) []token {
	out := make([]token, 0, len(operands))
	for _, t := range operands {
		if t.kind == tokNumber {
			out = append(out, t)
		}
	}
	return out
}

// lastNumbers returns the final n numeric operands, in order.
func lastNumbers(operands []token, n int) ([]float64, bool) {
	if n <= 0 {
		return nil, false
	}
	nums := make([]float64, 0, n)
	for i := len(operands) - 1; i >= 0 && len(nums) < n; i-- {
		if operands[i].kind == tokNumber {
			nums = append(nums, operands[i].num)
		}
	}
	if len(nums) < n {
		return nil, false
	}
	// Reverse into operand order.
	for i, j := 0, len(nums)-1; i < j; i, j = i+1, j-1 {
		nums[i], nums[j] = nums[j], nums[i]
	}
	return nums, true
}

func lastString(operands []token) (string, bool) {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == tokString {
			return operands[i].str, true
		}
	}
	return "", false
}
