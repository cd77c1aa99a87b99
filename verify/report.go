package verify

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/bfsim/program"
)

// Report summarizes static facts about a program.
type Report struct {
	Chars       int
	Symbols     int
	Insts       int // after compilation with the given options
	Unoptimized int
	MaxDepth    int

	Issues          []Issue
	StructIssues    []Issue
	RedundantIssues []Issue

	CompileErr error
}

// CompileOK reports whether the program compiled.
func (r *Report) CompileOK() bool {
	return r.CompileErr == nil
}

// GenerateReport lints and compiles src, returns a report
func GenerateReport(src string, opts program.CompileOptions) *Report {
	symbols := program.Preprocess(src)
	insts := program.Tokenize(symbols)

	report := &Report{
		Chars:       utf8.RuneCountInString(src),
		Symbols:     len(symbols),
		Unoptimized: len(insts),
		MaxDepth:    program.MaxLoopDepth(insts),
		Issues:      RunLint(src),
	}

	for _, issue := range report.Issues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.RedundantIssues = append(report.RedundantIssues, issue)
		}
	}

	prog, err := program.Compile(src, opts)
	report.CompileErr = err
	report.Insts = prog.Len()

	return report
}

// WriteReport writes a formatted report to a writer
func (r *Report) WriteReport(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Program Report")
	t.AppendRows([]table.Row{
		{"Characters", r.Chars},
		{"Symbols", r.Symbols},
		{"Instructions", r.Unoptimized},
		{"Optimized Instructions", r.Insts},
		{"Max Loop Depth", r.MaxDepth},
		{"STRUCT Issues", len(r.StructIssues)},
		{"REDUNDANT Issues", len(r.RedundantIssues)},
	})
	t.Render()

	if len(r.Issues) > 0 {
		it := table.NewWriter()
		it.SetOutputMirror(w)
		it.SetTitle("Lint Issues")
		it.AppendHeader(table.Row{"Line", "Col", "Type", "Message"})
		for _, issue := range r.Issues {
			it.AppendRow(table.Row{issue.Line, issue.Col, issue.Type, issue.Message})
		}
		it.Render()
	}

	if r.CompileOK() {
		fmt.Fprintln(w, "Compile: OK")
	} else {
		fmt.Fprintf(w, "Compile: FAILED: %v\n", r.CompileErr)
	}
}

// SaveReportToFile writes the report to filename.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
