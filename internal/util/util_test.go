package util

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateFileChecksum(t *testing.T) {
	t.Parallel()

	t.Run("known content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.txt")
		content := []byte("taxonomy: v1\n")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		got, err := CalculateFileChecksum(path)
		if err != nil {
			t.Fatalf("CalculateFileChecksum(%s) returned error: %v", path, err)
		}

		want := fmt.Sprintf("%x", sha256.Sum256(content))
		if got != want {
			t.Fatalf("CalculateFileChecksum(%s) = %s, want %s", path, got, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := CalculateFileChecksum(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
