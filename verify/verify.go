// Package verify provides static checks over tape machine source text.
//
// Two tools live here:
//
//   - RunLint (lint.go) scans raw source and reports every structural
//     problem with its line and column. The loop resolver stops at the first
//     unmatched bracket; the linter keeps going.
//   - GenerateReport (report.go) compiles the source both with and without
//     the optimizer and summarizes the result together with the lint issues.
//
// # Usage Example
//
//	issues := verify.RunLint(src)
//	for _, issue := range issues {
//	    fmt.Println(issue)
//	}
//
//	report := verify.GenerateReport(src, program.DefaultCompileOptions())
//	report.WriteReport(os.Stdout)
package verify

import "fmt"

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct    IssueType = "STRUCT"    // Program cannot compile (unmatched bracket)
	IssueRedundant IssueType = "REDUNDANT" // Code the optimizer removes (cancelling pair)
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Line    int // 1-based
	Col     int // 1-based, counted in characters
	Offset  int // byte offset into the source
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: [%s] %s", i.Line, i.Col, i.Type, i.Message)
}

// position tracks where a character sits in the source.
type position struct {
	line, col, offset int
}

func (p position) issue(t IssueType, format string, args ...any) Issue {
	return Issue{
		Type:    t,
		Line:    p.line,
		Col:     p.col,
		Offset:  p.offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasStructIssues reports whether any issue prevents compilation.
func HasStructIssues(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Type == IssueStruct {
			return true
		}
	}

	return false
}
