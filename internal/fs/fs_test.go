package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "out.txt")

	if err := WriteFile(strings.NewReader("line1\nline2\n"), p); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "line1\nline2\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestWriteFile_BadDestination(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "missing-dir", "out.txt")

	if err := WriteFile(strings.NewReader("x"), p); err == nil {
		t.Fatalf("expected error for missing destination directory")
	}
}

func TestCopyFile(t *testing.T) {
	d := t.TempDir()
	src := filepath.Join(d, "src.txt")
	dst := filepath.Join(d, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	d := t.TempDir()
	if err := CopyFile(filepath.Join(d, "nope.txt"), filepath.Join(d, "dst.txt")); err == nil {
		t.Fatalf("expected error for missing source")
	}
}
