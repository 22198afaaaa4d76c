package link

import (
	"io"
	"os"
)

type stdio struct {
	io.Reader
	io.Writer
}

// Stdio creates a Session on the process standard input and output.
func Stdio() *Session {
	return NewSession("stdio", &stdio{Reader: os.Stdin, Writer: os.Stdout})
}
