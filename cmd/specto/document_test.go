package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDocumentSplitsUnixLines(t *testing.T) {
	doc, err := LoadDocument(writeTempFile(t, "one\ntwo\nthree\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(doc.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(doc.Lines))
	}
	for i, w := range want {
		if doc.Lines[i] != w {
			t.Fatalf("line %d: got %q, want %q", i, doc.Lines[i], w)
		}
	}
}

func TestLoadDocumentSplitsWindowsLines(t *testing.T) {
	doc, err := LoadDocument(writeTempFile(t, "one\r\ntwo\r\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(doc.Lines) != 2 || doc.Lines[0] != "one" || doc.Lines[1] != "two" {
		t.Fatalf("CRLF terminators must not leak into lines, got %q", doc.Lines)
	}
}

func TestLoadDocumentKeepsUnterminatedTail(t *testing.T) {
	doc, err := LoadDocument(writeTempFile(t, "one\ntail"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(doc.Lines) != 2 || doc.Lines[1] != "tail" {
		t.Fatalf("a final line without terminator must be kept, got %q", doc.Lines)
	}
}

func TestLoadDocumentKeepsLoneCarriageReturn(t *testing.T) {
	doc, err := LoadDocument(writeTempFile(t, "a\rb\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(doc.Lines) != 1 || doc.Lines[0] != "a\rb" {
		t.Fatalf("a bare \\r is not a terminator, got %q", doc.Lines)
	}
}

func TestLoadDocumentEmptyFile(t *testing.T) {
	doc, err := LoadDocument(writeTempFile(t, ""))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.LineCount() != 0 {
		t.Fatalf("empty file must load as zero lines, got %d", doc.LineCount())
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatalf("loading a missing file must fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error must preserve the underlying cause, got %v", err)
	}
}

func TestDocumentAccessorsOnNil(t *testing.T) {
	var doc *Document
	if doc.LineCount() != 0 || doc.Line(0) != "" || doc.MaxCol(0) != 0 || doc.Padding(0) != 0 {
		t.Fatalf("nil document accessors must behave as an empty document")
	}
}

func TestMaxColAndPadding(t *testing.T) {
	doc := &Document{Lines: []string{"", "  ab", "\tx"}}
	if doc.MaxCol(0) != 0 {
		t.Fatalf("empty line must keep column 0 valid, got %d", doc.MaxCol(0))
	}
	if doc.MaxCol(1) != 3 {
		t.Fatalf("expected max col 3, got %d", doc.MaxCol(1))
	}
	if doc.Padding(1) != 2 {
		t.Fatalf("expected padding 2, got %d", doc.Padding(1))
	}
	if doc.Padding(2) != 1 {
		t.Fatalf("tabs count as padding, got %d", doc.Padding(2))
	}
}
