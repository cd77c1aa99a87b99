package core

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// SetupLogger installs a text handler on w as the default logger. Trace
// records pass only when trace is set; otherwise only warnings and errors
// are written.
func SetupLogger(w io.Writer, trace bool) {
	level := slog.LevelWarn
	if trace {
		level = LevelTrace
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// WriteTape renders every materialized cell of the tape, marking the cell
// under the pointer.
func WriteTape(w io.Writer, tape *Tape, pos int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Tape (" + strconv.Itoa(tape.Len()) + " cells)")
	t.AppendHeader(table.Row{"", "Address", "Value", "Char"})

	for _, addr := range tape.Addresses() {
		marker := ""
		if addr == pos {
			marker = "->"
		}

		v := tape.Read(addr)
		t.AppendRow(table.Row{marker, addr, v, printable(v)})
	}

	if !tapeHas(tape, pos) {
		t.AppendFooter(table.Row{"->", pos, 0, ""})
	}

	t.Render()
}

func tapeHas(tape *Tape, addr int) bool {
	_, ok := tape.cells[addr]
	return ok
}

func printable(v uint8) string {
	if v >= 0x20 && v < 0x7f {
		return string(rune(v))
	}
	return ""
}
