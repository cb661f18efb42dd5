package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := SafeWriteFile(path, []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := SafeWriteFile(path, []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "two" {
		t.Fatalf("expected replaced content, got %q", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should not remain after rename")
	}
}

func TestDecodeTextDropsInvalidBytes(t *testing.T) {
	if got := DecodeText([]byte("plain text")); got != "plain text" {
		t.Fatalf("valid UTF-8 should pass through, got %q", got)
	}
	got := DecodeText([]byte{'h', 'i', 0xff, 0xfe, '!'})
	if got != "hi!" {
		t.Fatalf("invalid bytes should be dropped, got %q", got)
	}
}
