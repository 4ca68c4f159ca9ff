package storage_test

import (
	"io"
	"strings"
	"testing"

	"github.com/examdesk/examdesk/internal/storage"
)

func TestPutGetRoundtrip(t *testing.T) {
	s, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	name, err := s.Put("2010_OpenExam_answers.html", strings.NewReader("<html>ok</html>"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if name != "2010_OpenExam_answers.html" {
		t.Errorf("Put returned %q", name)
	}

	rc, err := s.Get(name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html>ok</html>" {
		t.Errorf("Get = %q", data)
	}
}

func TestPutConfinesKeyToBase(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	name, err := s.Put("../../escape.html", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if name != "escape.html" {
		t.Errorf("Put stored %q, want path components stripped", name)
	}
	if _, err := s.Get("escape.html"); err != nil {
		t.Errorf("Get after confined Put: %v", err)
	}
}

func TestPutEmptyKey(t *testing.T) {
	s, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put("", strings.NewReader("x")); err == nil {
		t.Fatal("Put accepted an empty key")
	}
}
