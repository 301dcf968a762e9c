package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// LineReader yields one command line at a time. It returns io.EOF when the
// input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
	prompt  string
	out     io.Writer
}

// NewScannerReader reads lines from r without prompting.
func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

// NewPromptReader reads lines from r and writes prompt to out before each one.
func NewPromptReader(r io.Reader, out io.Writer, prompt string) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r), prompt: prompt, out: out}
}

// Stdin prompts only when stdin is a terminal, so piped scripts produce
// clean output.
func Stdin(prompt string) LineReader {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewPromptReader(os.Stdin, os.Stdout, prompt)
	}
	return NewScannerReader(os.Stdin)
}

func (s *scannerReader) ReadLine() (string, error) {
	if s.out != nil {
		fmt.Fprint(s.out, s.prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}
