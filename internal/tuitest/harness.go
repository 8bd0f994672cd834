// Package tuitest drives a terminal program inside a PTY and records what it
// draws, so integration tests can assert on rendered screens instead of raw
// byte streams.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultCols    = 120
	defaultRows    = 32
	defaultTimeout = 8 * time.Second
)

// Keystroke is one scripted write to the terminal. After is the pause before
// the bytes are sent; zero means immediately.
type Keystroke struct {
	After time.Duration
	Bytes []byte
}

// Options describes the program under test and the script to replay.
type Options struct {
	Command        []string
	Dir            string
	Env            []string
	Cols           int
	Rows           int
	Script         []Keystroke
	Timeout        time.Duration
	AllowedExits   []int
	AllowInterrupt bool
}

// Session is the result of one driven run.
type Session struct {
	Output  []byte
	Screens []Screen
	Elapsed time.Duration
}

// Drive spawns the command inside a PTY, replays the script, and waits for
// the program to exit.
func Drive(ctx context.Context, opts Options) (*Session, error) {
	if len(opts.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cols := opts.Cols
	if cols <= 0 {
		cols = defaultCols
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = sessionEnv(opts.Env)

	okExits := map[int]struct{}{0: {}}
	for _, code := range opts.AllowedExits {
		okExits[code] = struct{}{}
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	var output bytes.Buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		replies := newQueryReplier(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				replies.Feed(chunk)
				_, _ = output.Write(chunk)
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) || errors.Is(readErr, os.ErrClosed) {
					return
				}
				return
			}
		}
	}()

	start := time.Now()
	for _, stroke := range opts.Script {
		if stroke.After > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: context cancelled mid-script: %w", ctx.Err())
			case <-time.After(stroke.After):
			}
		}
		if len(stroke.Bytes) > 0 {
			if _, err := ptmx.Write(stroke.Bytes); err != nil {
				return nil, fmt.Errorf("tuitest: write keystroke: %w", err)
			}
		}
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	select {
	case err := <-exited:
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				if _, ok := okExits[exitErr.ExitCode()]; ok {
					break
				}
			}
			if opts.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt") {
				break
			}
			return nil, fmt.Errorf("tuitest: program exited with error: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: timeout waiting for exit: %w", ctx.Err())
	}

	// Closing the PTY unblocks the reader so it can finish draining.
	_ = ptmx.Close()
	<-drained

	raw := output.Bytes()
	return &Session{
		Output:  raw,
		Screens: splitScreens(raw),
		Elapsed: time.Since(start),
	}, nil
}

func sessionEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// Common keystrokes for scripting.
var (
	KeyEnter  = []byte{'\r'}
	KeyTab    = []byte{'\t'}
	KeyCtrlC  = []byte{3}
	KeyCtrlR  = []byte{18}
	KeyEscape = []byte{27}
)

// Type returns a keystroke that writes the given text.
func Type(text string) Keystroke {
	return Keystroke{Bytes: []byte(text)}
}
