package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
	"golang.org/x/term"
)

// flushingReader flushes pending output before every read, so prompts
// reach the user before the program waits for input. A failed flush is an
// output failure.
type flushingReader struct {
	r io.Reader
	w *bufio.Writer
}

func (f flushingReader) Read(p []byte) (int, error) {
	if err := f.w.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrOutput, err)
	}

	return f.r.Read(p)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func shouldBuffer(mode config.BufferMode, stdout io.Writer) bool {
	switch mode {
	case config.BufferAlways:
		return true
	case config.BufferNever:
		return false
	default:
		return !isTerminal(stdout)
	}
}

// bufferedIO wraps stdin and stdout according to mode. The returned flush
// writes out anything still buffered.
func bufferedIO(
	mode config.BufferMode,
	stdin io.Reader,
	stdout io.Writer,
) (out io.Writer, in io.Reader, flush func() error) {
	if !shouldBuffer(mode, stdout) {
		return stdout, stdin, func() error { return nil }
	}

	w := bufio.NewWriter(stdout)

	return w, flushingReader{r: stdin, w: w}, w.Flush
}

func programOptions(cfg config.Config) program.CompileOptions {
	return program.CompileOptions{Optimize: cfg.Optimize}
}
