package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  hero@example.com \n\n"), &out)

	got, err := p.Line("Email", "")
	if err != nil || got != "hero@example.com" {
		t.Fatalf("Line = %q, %v", got, err)
	}
	got, err = p.Line("Archetype", "Sage")
	if err != nil || got != "Sage" {
		t.Fatalf("Line default = %q, %v", got, err)
	}
	if !strings.Contains(out.String(), "Archetype [Sage]: ") {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestLineEOFWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("last"), &bytes.Buffer{})
	got, err := p.Line("Title", "")
	if err != nil || got != "last" {
		t.Fatalf("Line = %q, %v", got, err)
	}
}

func TestMultiline(t *testing.T) {
	p := New(strings.NewReader("first\nsecond\n\nignored\n"), &bytes.Buffer{})
	got, err := p.Multiline("Body")
	if err != nil || got != "first\nsecond" {
		t.Fatalf("Multiline = %q, %v", got, err)
	}
}

func TestConfirm(t *testing.T) {
	p := New(strings.NewReader("YES\nnope\n"), &bytes.Buffer{})
	if ok, _ := p.Confirm("Delete"); !ok {
		t.Fatalf("expected yes")
	}
	if ok, _ := p.Confirm("Delete"); ok {
		t.Fatalf("expected no")
	}
}

func TestPassword(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	defer func() { readPassword, isTerminal = oldRead, oldTerm }()

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret!"), nil }
	var out bytes.Buffer
	got, err := New(strings.NewReader(""), &out).Password("Password")
	if err != nil || got != "s3cret!" {
		t.Fatalf("Password = %q, %v", got, err)
	}

	isTerminal = func(int) bool { return false }
	if _, err := New(strings.NewReader(""), &out).Password("Password"); !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got %v", err)
	}
}

func TestReadSecret(t *testing.T) {
	got, err := ReadSecret(strings.NewReader("pw\r\nrest"))
	if err != nil || got != "pw" {
		t.Fatalf("ReadSecret = %q, %v", got, err)
	}
}
