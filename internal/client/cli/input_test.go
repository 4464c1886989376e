package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Say something", &out)
	if err != nil {
		t.Fatalf("GetSimpleText: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(out.String(), "Say something") {
		t.Errorf("prompt not printed: %q", out.String())
	}
}

func TestGetSimpleTextPartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(reader, "p", &out)
	if err != nil {
		t.Fatalf("GetSimpleText: %v", err)
	}
	if got != "no newline" {
		t.Errorf("got %q", got)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	if _, err := GetSimpleText(reader, "p", &out); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestGetLines(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("one.pdf\ntwo.txt\n\nignored\n"))

	got, err := GetLines(reader, "Paths", &out)
	if err != nil {
		t.Fatalf("GetLines: %v", err)
	}
	if len(got) != 2 || got[0] != "one.pdf" || got[1] != "two.txt" {
		t.Errorf("got %v", got)
	}
}

func TestGetLinesStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("only.md"))

	got, err := GetLines(reader, "Paths", &out)
	if err != nil {
		t.Fatalf("GetLines: %v", err)
	}
	if len(got) != 1 || got[0] != "only.md" {
		t.Errorf("got %v", got)
	}
}

func TestGetPasswordStubbed(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil {
		t.Fatalf("GetPassword: %v", err)
	}
	if string(pw) != "s3cret" {
		t.Errorf("got %q", pw)
	}
	if !strings.Contains(out.String(), "Enter password") {
		t.Errorf("prompt not printed: %q", out.String())
	}
}
