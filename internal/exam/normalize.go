package exam

import (
	"regexp"
	"strings"
)

// defaultBannerPatterns strip the page artifacts found in scanned exam
// papers: title banners, answer-key banners, and page-number footers.
var defaultBannerPatterns = []string{
	`Open\s+Exam`,
	`Answer\s+Key`,
	`Page\s+\d+`,
	`^\d+\s*$`,
	`^Page\s+\d+`,
}

// Normalizer removes headers, footers and other page noise from raw
// document text before question parsing. The zero value is not usable;
// construct with NewNormalizer.
type Normalizer struct {
	patterns []*regexp.Regexp
}

// NewNormalizer compiles the banner patterns. Extra patterns (from
// configuration) are matched in addition to the defaults; invalid
// expressions are ignored.
func NewNormalizer(extra ...string) *Normalizer {
	n := &Normalizer{}
	for _, p := range append(append([]string{}, defaultBannerPatterns...), extra...) {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			continue
		}
		n.patterns = append(n.patterns, re)
	}
	return n
}

// Normalize strips banner text from raw page text. All other content,
// including the whitespace structure needed for line splitting, is left
// untouched. Empty input yields empty output.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	out := raw
	for _, re := range n.patterns {
		out = re.ReplaceAllString(out, "")
	}
	return strings.TrimSpace(out)
}

// FilterLines splits normalized text into lines, dropping banner and
// pure page-number lines while preserving blank lines as separators.
func (n *Normalizer) FilterLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			out = append(out, "")
			continue
		}
		if bannerLineRe.MatchString(line) || pageNumberRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

var (
	bannerLineRe = regexp.MustCompile(`(?i)^(Open Exam|Answer Key|Page \d+)$`)
	pageNumberRe = regexp.MustCompile(`^\d+$`)
)
