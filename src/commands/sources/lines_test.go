package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.hex")
	content := ":0300300002337A1E\r\n; comment\n:00000001FF\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	source, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer source.Close()

	lines, err := source.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	want := []string{":0300300002337A1E", "; comment", ":00000001FF"}
	if len(lines) != len(want) {
		t.Fatalf("line count = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.hex")); err == nil {
		t.Errorf("Open succeeded on a missing file")
	}
}
