package answerkey

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/examdesk/examdesk/internal/pdf"
)

// Yellow-highlight detection bounds. Distances are PDF user-space
// units; the x offset is half-weighted when ranking candidate
// questions, matching how keys lay out choice columns under their
// question number.
const (
	maxQuestionVerticalDist   = 200.0
	maxQuestionHorizontalDist = 200.0
	horizontalWeight          = 0.5
	letterSearchXRange        = 50.0
	letterSearchYRange        = 20.0
)

var choiceLetterRe = regexp.MustCompile(`\b([A-E])\.`)

// questionMarker is a question number's anchor position on a page.
type questionMarker struct {
	num int
	x   float64
	y   float64
}

// extractHighlights locates yellow-filled regions on each page, reads
// the choice letter under or beside each, and attributes it to the
// nearest question marker above. Results from this pass override any
// text-pattern result for the same question.
func extractHighlights(doc *pdf.Document) AnswerMap {
	answers := AnswerMap{}
	for _, page := range doc.Pages {
		yellow := yellowRects(page.Rects)
		if len(yellow) == 0 {
			continue
		}
		markers := questionMarkers(page.Chars)
		if len(markers) == 0 {
			continue
		}
		for _, rect := range yellow {
			letter, ok := highlightedLetter(page.Chars, rect)
			if !ok {
				continue
			}
			num, ok := nearestQuestionAbove(markers, rect)
			if !ok {
				continue
			}
			answers[num] = letter
		}
	}
	return answers
}

// yellowRects keeps fills inside the yellow color range.
func yellowRects(rects []pdf.Rect) []pdf.Rect {
	var out []pdf.Rect
	for _, r := range rects {
		if r.Fill.R > 0.8 && r.Fill.G > 0.8 && r.Fill.B < 0.3 {
			out = append(out, r)
		}
	}
	return out
}

// questionMarkers finds "N." sequences in the page's characters and
// records the first position seen for each question number.
func questionMarkers(chars []pdf.Char) []questionMarker {
	seen := map[int]bool{}
	var markers []questionMarker
	for i, c := range chars {
		if !isDigit(c.Text) || i+1 >= len(chars) || chars[i+1].Text != "." {
			continue
		}
		// Collect up to two preceding digits for multi-digit numbers.
		digits := ""
		for j := i - 2; j <= i; j++ {
			if j >= 0 && isDigit(chars[j].Text) {
				digits += chars[j].Text
			}
		}
		if digits == "" {
			continue
		}
		num, err := strconv.Atoi(digits)
		if err != nil || seen[num] {
			continue
		}
		seen[num] = true
		markers = append(markers, questionMarker{num: num, x: c.X0, y: c.Top})
	}
	return markers
}

// highlightedLetter identifies the choice letter a highlight covers:
// first confirm the rect actually overlaps text, then search the
// characters in a small window around the rect for "L." markers.
func highlightedLetter(chars []pdf.Char, rect pdf.Rect) (string, bool) {
	overlapping := false
	centerY := (rect.Top + rect.Bottom) / 2

	var nearby []pdf.Char
	for _, c := range chars {
		if c.X0 < rect.X1 && c.X1 > rect.X0 && c.Bottom < rect.Top && c.Top > rect.Bottom {
			overlapping = true
		}
		charCenterY := (c.Top + c.Bottom) / 2
		if abs(c.X0-rect.X0) < letterSearchXRange && abs(charCenterY-centerY) < letterSearchYRange {
			nearby = append(nearby, c)
		}
	}
	if !overlapping || len(nearby) == 0 {
		return "", false
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].Top != nearby[j].Top {
			return nearby[i].Top > nearby[j].Top // higher on page first
		}
		return nearby[i].X0 < nearby[j].X0
	})
	var sb strings.Builder
	for _, c := range nearby {
		sb.WriteString(c.Text)
	}
	m := choiceLetterRe.FindStringSubmatch(sb.String())
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// nearestQuestionAbove ranks markers above the highlight by weighted
// distance and returns the closest within bounds.
func nearestQuestionAbove(markers []questionMarker, rect pdf.Rect) (int, bool) {
	centerY := (rect.Top + rect.Bottom) / 2
	best := 0
	bestDist := -1.0
	for _, m := range markers {
		if m.y <= centerY {
			continue // not above the highlight
		}
		dy := m.y - centerY
		dx := abs(m.x - rect.X0)
		if dy >= maxQuestionVerticalDist || dx >= maxQuestionHorizontalDist {
			continue
		}
		weighted := dy + dx*horizontalWeight
		if bestDist < 0 || weighted < bestDist {
			bestDist = weighted
			best = m.num
		}
	}
	return best, bestDist >= 0
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
