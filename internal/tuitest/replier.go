package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery pairs a capability probe emitted by the program with the
// canned reply a real terminal would send back.
type terminalQuery struct {
	probe []byte
	reply []byte
}

// Bubble Tea probes the cursor position and the terminal's fore/background
// colors on startup; without replies it stalls until its internal timeout.
var terminalQueries = []terminalQuery{
	{probe: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")},
	{probe: []byte("\x1b]10;?\x07"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{probe: []byte("\x1b]10;?\x1b\\"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{probe: []byte("\x1b]11;?\x07"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{probe: []byte("\x1b]11;?\x1b\\"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

type queryReplier struct {
	w   io.Writer
	buf []byte
}

func newQueryReplier(w io.Writer) *queryReplier {
	return &queryReplier{w: w, buf: make([]byte, 0, 128)}
}

func (qr *queryReplier) Feed(chunk []byte) {
	qr.buf = append(qr.buf, chunk...)
	for qr.answerOne() {
	}
	// Keep a small tail so probes spanning two reads still match.
	if len(qr.buf) > 256 {
		qr.buf = qr.buf[len(qr.buf)-64:]
	}
}

func (qr *queryReplier) answerOne() bool {
	for _, q := range terminalQueries {
		idx := bytes.Index(qr.buf, q.probe)
		if idx < 0 {
			continue
		}
		qr.buf = qr.buf[idx+len(q.probe):]
		_, _ = qr.w.Write(q.reply)
		return true
	}
	return false
}
