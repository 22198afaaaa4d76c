package wire

import (
	"io"
	"strings"
)

// MaxLineLength is the longest line the framer keeps. Extra bytes before
// the terminator are dropped.
const MaxLineLength = 127

// Framer assembles bytes into command lines.
type Framer struct {
	buf []byte
}

// Feed consumes one byte. It returns a line when b terminates a line which
// is not blank.
func (f *Framer) Feed(b byte) (line string, ok bool) {
	if b == '\n' || b == '\r' {
		if len(f.buf) == 0 {
			return
		}
		line = strings.TrimSpace(string(f.buf))
		f.buf = f.buf[:0]
		return line, line != ""
	}
	if len(f.buf) < MaxLineLength {
		f.buf = append(f.buf, b)
	}
	return
}

// Pending indicates a partial line is buffered.
func (f *Framer) Pending() bool {
	return len(f.buf) > 0
}

// Reset drops the partial line.
func (f *Framer) Reset() {
	f.buf = f.buf[:0]
}

// Scanner reads lines from an io.Reader.
type Scanner struct {
	r      io.Reader
	framer Framer
	buf    []byte
	data   []byte
	err    error
}

// NewScanner creates a Scanner.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r, buf: make([]byte, 256)}
}

// Next returns the next non-blank line. Once the reader fails and no
// buffered bytes complete a line, the read error is returned.
func (s *Scanner) Next() (string, error) {
	for {
		for len(s.data) > 0 {
			b := s.data[0]
			s.data = s.data[1:]
			if line, ok := s.framer.Feed(b); ok {
				return line, nil
			}
		}
		if s.err != nil {
			return "", s.err
		}
		n, err := s.r.Read(s.buf)
		s.data, s.err = s.buf[:n], err
	}
}
