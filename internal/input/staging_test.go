package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Minimal valid PNG header, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestStageText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{"plain message", "urgent: verify your account", nil},
		{"empty", "", ErrEmptyMessage},
		{"whitespace only", "   \n\t ", ErrEmptyMessage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			staged, err := StageText(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("StageText(%q) error = %v, want %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if staged != nil {
					t.Fatal("rejected input must not be staged")
				}
				return
			}
			if staged.Kind != KindText || staged.Text != tt.value {
				t.Fatalf("staged = %+v", staged)
			}
		})
	}
}

func TestStageImageBytesAcceptsPNG(t *testing.T) {
	t.Parallel()

	staged, err := StageImageBytes("screenshot.png", pngHeader)
	if err != nil {
		t.Fatalf("StageImageBytes: %v", err)
	}
	if staged.Kind != KindImage || staged.MIMEType != "image/png" {
		t.Fatalf("staged = %+v", staged)
	}
	if staged.SizeBytes != int64(len(pngHeader)) {
		t.Fatalf("size = %d, want %d", staged.SizeBytes, len(pngHeader))
	}
	if !strings.HasPrefix(staged.Preview, "data:image/png;base64,") {
		t.Fatalf("preview is not a data URL: %q", staged.Preview)
	}
}

func TestStageImageBytesRejectsNonImage(t *testing.T) {
	t.Parallel()

	if _, err := StageImageBytes("notes.txt", []byte("plain text payload")); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("error = %v, want ErrNotAnImage", err)
	}
}

func TestStageImageBytesRejectsOversized(t *testing.T) {
	t.Parallel()

	big := make([]byte, MaxImageBytes+1)
	copy(big, pngHeader)
	if _, err := StageImageBytes("huge.png", big); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("error = %v, want ErrImageTooLarge", err)
	}
}

func TestStageImageReadsFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.png")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	staged, err := StageImage(path)
	if err != nil {
		t.Fatalf("StageImage: %v", err)
	}
	if staged.Filename != "capture.png" {
		t.Fatalf("filename = %q", staged.Filename)
	}
}
