package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreUploadWritesAndResolvesURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	url, err := store.Upload(context.Background(), "dream-photos/me.jpg", []byte("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if want := "http://localhost:8080/static/dream-photos/me.jpg"; url != want {
		t.Fatalf("URL = %q, want %q", url, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dream-photos", "me.jpg"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("stored content = %q, want original bytes", data)
	}
}

func TestFileStoreRejectsEmptyBasePath(t *testing.T) {
	if _, err := NewFileStore("  ", "http://localhost"); err == nil {
		t.Fatal("NewFileStore should reject an empty base path")
	}
}

func TestFileStoreRejectsTraversalKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost")
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	for _, key := range []string{"", "   ", "../escape.txt", "a/../../escape.txt", "."} {
		if _, err := store.Upload(context.Background(), key, []byte("x"), "text/plain"); err == nil {
			t.Fatalf("Upload(%q) should fail", key)
		}
	}
}

func TestSanitizeKeyNormalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dream-photos/me.jpg", "dream-photos/me.jpg"},
		{"/leading/slash.png", "leading/slash.png"},
		{"./relative.png", "relative.png"},
		{"a//b.png", "a/b.png"},
		{"a\\b.png", "a/b.png"},
	}
	for _, tt := range tests {
		got, err := sanitizeKey(tt.in)
		if err != nil {
			t.Fatalf("sanitizeKey(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
