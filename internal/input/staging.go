package input

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageBytes caps uploads at 16 MiB, matching the server-side limit.
const MaxImageBytes = 16 << 20

// Validation failures, reported before anything touches the network.
var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrNotAnImage    = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image exceeds the 16 MiB limit")
)

// Kind distinguishes the two input modalities.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// StagedInput is the single pending value awaiting submission. Staging a new
// input of either kind replaces any previous one; the caller holds at most
// one at a time.
type StagedInput struct {
	Kind      Kind
	Text      string
	Filename  string
	Data      []byte
	MIMEType  string
	SizeBytes int64
	// Preview is a data URL of the staged image, for display only. It is
	// never part of the analysis payload.
	Preview string
}

// Describe returns a short human-readable summary of the staged value.
func (s *StagedInput) Describe() string {
	if s == nil {
		return "nothing staged"
	}
	if s.Kind == KindText {
		return fmt.Sprintf("message (%d chars)", len(s.Text))
	}
	return fmt.Sprintf("%s (%s, %.1f KiB)", s.Filename, s.MIMEType, float64(s.SizeBytes)/1024)
}

// StageText validates and stages a raw message. Values that trim to empty
// are rejected without staging.
func StageText(value string) (*StagedInput, error) {
	if strings.TrimSpace(value) == "" {
		return nil, ErrEmptyMessage
	}
	return &StagedInput{Kind: KindText, Text: value}, nil
}

// StageImage reads an image file from disk and stages it. The size gate runs
// before the file is read so an oversized file never lands in memory.
func StageImage(path string) (*StagedInput, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return StageImageBytes(filepath.Base(path), data)
}

// StageImageBytes validates raw image bytes and stages them with a base64
// data-URL preview.
func StageImageBytes(filename string, data []byte) (*StagedInput, error) {
	if int64(len(data)) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	mimeType := detectMIME(filename, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotAnImage
	}
	return &StagedInput{
		Kind:      KindImage,
		Filename:  filename,
		Data:      data,
		MIMEType:  mimeType,
		SizeBytes: int64(len(data)),
		Preview:   fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
	}, nil
}

// detectMIME prefers the file extension and falls back to content sniffing,
// trimming any charset parameters either source may attach.
func detectMIME(filename string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil {
			return mt
		}
	}
	sniffed := http.DetectContentType(data)
	if mt, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mt
	}
	return sniffed
}
