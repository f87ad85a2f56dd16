package report

import (
	"bytes"
	"io"
)

// CRLFWriter rewrites bare "\n" as "\r\n". Remote terminals in raw mode
// (SSH sessions with a PTY) do not return the carriage on a line feed.
type CRLFWriter struct {
	w      io.Writer
	lastCR bool
}

// NewCRLFWriter wraps w.
func NewCRLFWriter(w io.Writer) *CRLFWriter {
	return &CRLFWriter{w: w}
}

// Ensure CRLFWriter satisfies io.Writer.
var _ io.Writer = (*CRLFWriter)(nil)

// Write implements io.Writer. The returned count refers to p, not to the
// bytes written downstream.
func (cw *CRLFWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	buf.Grow(len(p) + bytes.Count(p, []byte{'\n'}))
	for _, b := range p {
		if b == '\n' && !cw.lastCR {
			buf.WriteByte('\r')
		}
		buf.WriteByte(b)
		cw.lastCR = b == '\r'
	}
	if _, err := cw.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
