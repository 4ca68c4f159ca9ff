// Package quiz wires document parsing, key resolution and scoring into
// the request-scoped operations the web layer calls.
package quiz

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/examdesk/examdesk/internal/answerkey"
	"github.com/examdesk/examdesk/internal/exam"
	"github.com/examdesk/examdesk/internal/grading"
	"github.com/examdesk/examdesk/internal/pdf"
)

// TestInfo describes one available test document.
type TestInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Service performs single-exam, synchronous processing: each call does
// one full document parse (or cache hit) with no shared mutable state
// beyond the write-once cache.
type Service struct {
	testDir string
	keyDir  string

	parser    *exam.Parser
	extractor *answerkey.Extractor
	sheets    *answerkey.SpreadsheetExtractor
	resolver  *answerkey.Resolver
	cache     *Cache
	events    *EventLog
	log       zerolog.Logger
}

func NewService(testDir, keyDir string, norm *exam.Normalizer, log zerolog.Logger) *Service {
	return &Service{
		testDir:   testDir,
		keyDir:    keyDir,
		parser:    exam.NewParser(norm),
		extractor: answerkey.NewExtractor(norm, log),
		sheets:    answerkey.NewSpreadsheetExtractor(log),
		resolver:  answerkey.NewResolver(log),
		cache:     NewCache(),
		log:       log,
	}
}

// SetEventLog enables submission recording; nil disables it.
func (s *Service) SetEventLog(l *EventLog) { s.events = l }

// ListTests returns the PDF test documents in the test directory,
// sorted by name.
func (s *Service) ListTests() ([]TestInfo, error) {
	entries, err := os.ReadDir(s.testDir)
	if err != nil {
		return nil, fmt.Errorf("read test dir: %w", err)
	}
	var tests []TestInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		tests = append(tests, TestInfo{
			Name: e.Name(),
			Path: filepath.Join(s.testDir, e.Name()),
		})
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].Name < tests[j].Name })
	return tests, nil
}

// Questions parses the named test document into its ordered question
// list, serving repeat requests from the cache.
func (s *Service) Questions(testName string) ([]exam.Question, error) {
	path := filepath.Join(s.testDir, filepath.Base(testName))
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("test document: %w", err)
	}
	if qs, ok := s.cache.get(path, info.ModTime()); ok {
		return qs, nil
	}

	doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exam.ErrDocumentUnreadable, err)
	}
	qs, err := s.parser.Parse(doc.Text())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("test", testName).Int("questions", len(qs)).Msg("test document parsed")
	s.cache.put(path, info.ModTime(), qs)
	return qs, nil
}

// AnswerKey resolves and extracts the answer key for a test document.
// Returns the key filename alongside the map. A missing or unusable
// key is reported as answerkey.ErrNoKeyFound; callers proceed without
// scoring.
func (s *Service) AnswerKey(testName string) (answerkey.AnswerMap, string, error) {
	listing, err := keyListing(s.keyDir)
	if err != nil {
		s.log.Warn().Err(err).Str("dir", s.keyDir).Msg("key directory unavailable")
		return nil, "", answerkey.ErrNoKeyFound
	}

	keyName, ok := s.resolver.Resolve(testName, listing)
	if !ok {
		return nil, "", answerkey.ErrNoKeyFound
	}
	keyPath := filepath.Join(s.keyDir, keyName)

	var answers answerkey.AnswerMap
	switch strings.ToLower(filepath.Ext(keyName)) {
	case ".xlsx", ".xls":
		var extractErr error
		answers, _, extractErr = s.sheets.ExtractFile(keyPath)
		if extractErr != nil {
			s.log.Warn().Err(extractErr).Str("key", keyName).Msg("spreadsheet key unreadable")
			return nil, keyName, answerkey.ErrNoKeyFound
		}
	default:
		doc, openErr := pdf.Open(keyPath)
		if openErr != nil {
			s.log.Warn().Err(openErr).Str("key", keyName).Msg("key PDF unreadable")
			return nil, keyName, answerkey.ErrNoKeyFound
		}
		answers, _ = s.extractor.Extract(doc)
	}

	if len(answers) == 0 {
		return nil, keyName, answerkey.ErrNoKeyFound
	}
	return answers, keyName, nil
}

// GradeResult bundles everything one scored submission produced.
type GradeResult struct {
	Summary   grading.Summary
	Questions []exam.Question
	Answers   answerkey.AnswerMap
	// KeyName is the resolved key file. It stays set when the file was
	// found but unreadable or empty, so callers can tell that apart
	// from no key existing at all; Answers is empty in both cases.
	KeyName string
}

// Grade parses the test, resolves its key and scores the submission.
// With no usable key every result is no_key.
func (s *Service) Grade(testName string, submitted map[string]string) (GradeResult, error) {
	questions, err := s.Questions(testName)
	if err != nil {
		return GradeResult{}, err
	}

	answers, keyName, err := s.AnswerKey(testName)
	if err != nil {
		answers = answerkey.AnswerMap{}
	}

	summary := grading.Score(submitted, answers, questions)
	s.log.Info().
		Str("test", testName).
		Str("key", keyName).
		Int("correct", summary.Correct).
		Int("incorrect", summary.Incorrect).
		Int("unanswered", summary.Unanswered).
		Float64("score", summary.ScorePercentage).
		Msg("submission scored")

	if s.events != nil {
		ev := SubmissionEvent{
			Test:       testName,
			Key:        keyName,
			Total:      summary.Total,
			Correct:    summary.Correct,
			Incorrect:  summary.Incorrect,
			Unanswered: summary.Unanswered,
			Score:      summary.ScorePercentage,
			At:         time.Now().UTC(),
		}
		if logErr := s.events.Append(ev); logErr != nil {
			s.log.Warn().Err(logErr).Msg("could not record submission event")
		}
	}
	return GradeResult{
		Summary:   summary,
		Questions: questions,
		Answers:   answers,
		KeyName:   keyName,
	}, nil
}

// keyListing names every regular file in the key directory; the
// resolver applies its own extension and temp-file filtering.
func keyListing(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
