package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders a single-line caret-style message against one
// source file, the shape the teacher's own CLI uses for its syntax
// errors.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for source, keyed to filename for the
// "--> file:line:col" location line.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders one error at the given 1-indexed line/col.
func (r *Reporter) Format(code, message string, line, col int) string {
	bold := color.New(color.FgRed, color.Bold).SprintFunc()
	header := fmt.Sprintf("%s[%s]: %s", bold("error"), code, message)

	if line <= 0 || line > len(r.lines) {
		return header + "\n"
	}

	srcLine := r.lines[line-1]
	caret := strings.Repeat(" ", max0(col-1)) + bold("^")
	return fmt.Sprintf("%s\n  --> %s:%d:%d\n  %s\n  %s\n", header, r.filename, line, col, srcLine, caret)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
