package tuitest

import (
	"regexp"
	"strings"
)

// Screen is one normalized terminal render, split on clear-screen sequences.
type Screen struct {
	Index int
	ANSI  string
	Plain string
}

var (
	clearScreen = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscSequence = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
)

func splitScreens(raw []byte) []Screen {
	cleaned := strings.ReplaceAll(string(raw), "\r", "")
	segments := clearScreen.Split(cleaned, -1)
	screens := make([]Screen, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(segment, "\x00")
		segment = strings.TrimPrefix(segment, "\x1b[H")
		if segment == "" {
			continue
		}
		plain := stripControl(segment)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		screens = append(screens, Screen{
			Index: len(screens),
			ANSI:  segment,
			Plain: trimLines(plain),
		})
	}
	if len(screens) == 0 && len(cleaned) > 0 {
		screens = append(screens, Screen{ANSI: cleaned, Plain: trimLines(stripControl(cleaned))})
	}
	return screens
}

// Final returns the last rendered screen; ok is false when nothing was drawn.
func (s *Session) Final() (Screen, bool) {
	if s == nil || len(s.Screens) == 0 {
		return Screen{}, false
	}
	return s.Screens[len(s.Screens)-1], true
}

// Contains reports whether any screen's plain text contains the substring.
func (s *Session) Contains(substr string) bool {
	if s == nil {
		return false
	}
	for _, screen := range s.Screens {
		if strings.Contains(screen.Plain, substr) {
			return true
		}
	}
	return false
}

func stripControl(s string) string {
	s = oscSequence.ReplaceAllString(s, "")
	s = csiSequence.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\x0f", "")
	s = strings.ReplaceAll(s, "\x0e", "")
	return s
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
