package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/dshills/rpncalc/internal/config"
)

// LineReader reads one line of input after showing prompt.
// *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// REPL runs a session one input line at a time. Every character of a line
// is typed into the session followed by a newline, then the document is
// printed. Its last line becomes the next prompt.
//
// Lines starting with ':' are host commands: :quit and :reset.
type REPL struct {
	cfg    config.Config
	in     LineReader
	out    io.Writer
	logger *Logger

	session *Session
	history func(string)
}

// NewREPL creates a REPL reading from in and printing to out.
func NewREPL(cfg config.Config, in LineReader, out io.Writer, logger *Logger) *REPL {
	if logger == nil {
		logger = NullLogger
	}
	r := &REPL{cfg: cfg, in: in, out: out, logger: logger.WithComponent("repl")}
	if ln, ok := in.(*liner.State); ok {
		r.history = ln.AppendHistory
	}
	return r
}

// NewLiner returns a line editor on the controlling terminal with Ctrl-C
// ending input. The caller closes it.
func NewLiner() *liner.State {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return ln
}

// Run opens a session and reads lines until end of input or :quit.
func (r *REPL) Run() error {
	s, err := OpenSession(r.cfg, r.logger)
	if err != nil {
		return err
	}
	r.session = s
	defer func() { r.session.Close() }()

	for {
		prompt := r.printFrame()
		line, err := r.in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return NewOperationError("read", "input", err)
		}

		if cmd := strings.TrimSpace(line); strings.HasPrefix(cmd, ":") {
			if r.command(cmd) {
				return nil
			}
			continue
		}
		if r.history != nil && strings.TrimSpace(line) != "" {
			r.history(line)
		}
		if err := r.session.Type(line + "\n"); err != nil {
			r.logger.Error("%v", err)
		}
	}
}

// Session returns the current session.
func (r *REPL) Session() *Session {
	return r.session
}

// command runs a host command and reports whether to exit.
func (r *REPL) command(cmd string) (exit bool) {
	switch strings.ToLower(cmd) {
	case ":q", ":quit":
		return true
	case ":reset":
		r.session.Close()
		s, err := OpenSession(r.cfg, r.logger)
		if err != nil {
			r.logger.Error("%v", err)
			fmt.Fprintf(r.out, "reset failed: %v\n", err)
			return true
		}
		r.session = s
	default:
		fmt.Fprintf(r.out, "unknown command %s. Use :quit or :reset.\n", cmd)
	}
	return false
}

// printFrame prints every document line but the last and returns the
// last as the prompt.
func (r *REPL) printFrame() string {
	text := r.session.Doc.Text()
	i := strings.LastIndexByte(text, '\n')
	if i < 0 {
		return text
	}
	fmt.Fprintln(r.out, text[:i])
	return text[i+1:]
}

// ScanReader reads lines from a non-interactive input. Prompts and the
// lines read are echoed to the output so the transcript reads like a
// terminal session.
type ScanReader struct {
	sc   *bufio.Scanner
	echo io.Writer
}

// NewScanReader creates a ScanReader.
func NewScanReader(in io.Reader, echo io.Writer) *ScanReader {
	return &ScanReader{sc: bufio.NewScanner(in), echo: echo}
}

// Prompt implements LineReader.
func (s *ScanReader) Prompt(prompt string) (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		if s.echo != nil {
			fmt.Fprint(s.echo, prompt)
		}
		return "", io.EOF
	}
	line := s.sc.Text()
	if s.echo != nil {
		fmt.Fprintf(s.echo, "%s%s\n", prompt, line)
	}
	return line, nil
}
