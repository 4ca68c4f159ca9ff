package answerkey

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Key file extensions in preference order: spreadsheets carry cleaner
// keys than PDFs, so they are tried first throughout the cascade.
var keyExtensions = []string{".xlsx", ".xls", ".pdf"}

// keyTokens mark a filename as answer-key material. "anser" covers a
// recurring typo in real key archives.
var keyTokens = []string{"key", "answer", "anser"}

var yearPrefixRe = regexp.MustCompile(`^(\d{4})`)

// Similarity thresholds. These are tuned constants, not semantic
// guarantees; see SimilarityRatio for the underlying measure.
const (
	minAcceptRatio       = 0.3
	containmentBoost     = 0.7
	stemContainmentBoost = 0.8
)

// Resolver matches a test document to its key file within a directory
// listing.
type Resolver struct {
	log zerolog.Logger
}

func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve picks the best key file for testFilename from the available
// names. The cascade tries deterministic filename templates, then
// normalized substring matching, then literal "key" files, then string
// similarity; the first stage to produce a match wins. The boolean is
// false when nothing reaches the similarity threshold.
func (r *Resolver) Resolve(testFilename string, available []string) (string, bool) {
	candidates := filterCandidates(available)
	if len(candidates) == 0 {
		r.log.Warn().Str("test", testFilename).Msg("no key files available")
		return "", false
	}

	stem := stemOf(testFilename)
	base := baseOf(stem)
	year := ""
	if m := yearPrefixRe.FindStringSubmatch(stem); m != nil {
		year = m[1]
	}

	inListing := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		inListing[c] = true
	}

	for _, tmpl := range filenameTemplates(stem, base, year) {
		if inListing[tmpl] {
			r.log.Info().Str("test", testFilename).Str("key", tmpl).
				Msg("key file matched by exact pattern")
			return tmpl, true
		}
	}

	if name, ok := matchNormalized(candidates, stem, year); ok {
		r.log.Info().Str("test", testFilename).Str("key", name).
			Msg("key file matched by normalized substring")
		return name, true
	}

	for _, ext := range keyExtensions {
		for _, literal := range []string{"key" + ext, "Key" + ext} {
			if inListing[literal] {
				r.log.Info().Str("test", testFilename).Str("key", literal).
					Msg("key file matched by literal name")
				return literal, true
			}
		}
	}

	name, ratio := bestSimilarity(candidates, stem, base)
	if name != "" && ratio >= minAcceptRatio {
		r.log.Info().Str("test", testFilename).Str("key", name).
			Float64("ratio", ratio).Msg("key file matched by similarity")
		return name, true
	}
	r.log.Warn().Str("test", testFilename).Float64("best_ratio", ratio).
		Msg("no matching key file found")
	return "", false
}

// filterCandidates keeps recognized extensions and drops spreadsheet
// temp files.
func filterCandidates(available []string) []string {
	var out []string
	for _, name := range available {
		if strings.HasPrefix(filepath.Base(name), "~$") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		for _, known := range keyExtensions {
			if ext == known {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// filenameTemplates builds the ordered deterministic candidate list
// from the test stem, its suffix-stripped base, and its year prefix.
// Spreadsheet extensions come before PDF within every group.
func filenameTemplates(stem, base, year string) []string {
	suffixes := []string{
		"_key", "_Key", "_KEY",
		"_answerkey", "_AnswerKey", "_ANSWERKEY",
		"_answer_key", "_Answer_Key",
		"_AnserKey", "_AnserKey_Letter",
		"_answerkey_letter", "_AnswerKey_Letter",
	}

	var templates []string
	for _, ext := range keyExtensions {
		for _, suffix := range suffixes {
			templates = append(templates, stem+suffix+ext)
		}
		templates = append(templates, "key_"+stem+ext, "Key_"+stem+ext)
	}
	if base != "" && base != strings.ToLower(stem) {
		for _, ext := range keyExtensions {
			for _, suffix := range []string{"_key", "_Key", "_answerkey", "_AnswerKey", "_AnserKey", "_AnserKey_Letter", "_answer_key"} {
				templates = append(templates, base+suffix+ext)
			}
			templates = append(templates, "key_"+base+ext)
		}
	}
	if year != "" {
		for _, ext := range keyExtensions {
			templates = append(templates,
				year+"_OpenExam_AnserKey"+ext,
				year+"_OpenExam_AnswerKey"+ext,
				year+"_OpenExam_key"+ext,
				year+"_OpenExam_Key"+ext,
				year+"_openexam_anserkey"+ext,
				year+"_openexam_answerkey"+ext,
			)
		}
	}
	return templates
}

// matchNormalized compares underscore-stripped lowercase stems. A
// candidate needs a key token to qualify; among qualifying names, ones
// carrying the test's year substring win over plain containment.
func matchNormalized(candidates []string, stem, year string) (string, bool) {
	stemNorm := normalizeName(stem)
	yearNorm := strings.ToLower(year)

	byContainment := ""
	for _, ext := range keyExtensions {
		for _, name := range candidates {
			if strings.ToLower(filepath.Ext(name)) != ext {
				continue
			}
			candStem := stemOf(name)
			candNorm := normalizeName(candStem)
			if !hasKeyToken(strings.ToLower(candStem)) {
				continue
			}
			if yearNorm != "" && strings.Contains(candNorm, yearNorm) {
				return name, true
			}
			if byContainment == "" &&
				(strings.Contains(candNorm, stemNorm) || strings.Contains(stemNorm, candNorm)) {
				byContainment = name
			}
		}
		if byContainment != "" {
			return byContainment, true
		}
	}
	return "", false
}

// bestSimilarity scores every candidate against the test name and
// returns the highest scorer.
func bestSimilarity(candidates []string, stem, base string) (string, float64) {
	stemLower := strings.ToLower(stem)
	bestName := ""
	bestRatio := 0.0

	for _, name := range candidates {
		candStem := stemOf(name)
		candLower := strings.ToLower(candStem)
		candBase := stripKeySuffixes(candLower)

		ratio := maxFloat(
			SimilarityRatio(stemLower, candLower),
			SimilarityRatio(base, candBase),
			SimilarityRatio(stemLower, candBase),
			SimilarityRatio(base, candLower),
		)

		if strings.Contains(candLower, stemLower) || strings.Contains(stemLower, candLower) {
			ratio = maxFloat(ratio, containmentBoost)
		}
		if base != "" && (strings.Contains(candBase, base) || strings.Contains(base, candBase)) {
			ratio = maxFloat(ratio, containmentBoost)
		}
		if strings.Contains(normalizeName(candLower), normalizeName(stemLower)) {
			ratio = maxFloat(ratio, stemContainmentBoost)
		}

		if ratio > bestRatio {
			bestRatio = ratio
			bestName = name
		}
	}
	return bestName, bestRatio
}

func stemOf(name string) string {
	b := filepath.Base(name)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// baseOf strips exam/test suffixes from a lowered stem for looser
// comparisons.
func baseOf(stem string) string {
	base := strings.ToLower(stem)
	for _, s := range []string{"_test", "_exam", "_openexam", "openexam"} {
		base = strings.ReplaceAll(base, s, "")
	}
	return base
}

// stripKeySuffixes removes key-related markers from a candidate stem so
// the remainder can be compared to the test's base name.
func stripKeySuffixes(stem string) string {
	out := stem
	for _, s := range []string{
		"_answerkey", "_anserkey", "_answer_key", "_answers", "_answer",
		"_key", "_letter", "key_", "answerkey", "anserkey", "answer_key",
	} {
		out = strings.ReplaceAll(out, s, "")
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

func hasKeyToken(s string) bool {
	for _, tok := range keyTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

func maxFloat(vals ...float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
