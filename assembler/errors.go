// Package assembler translates LC-3 assembly source text into LC-3
// object images: a lexer, a location-counter pass that builds the
// symbol table, and an encoding pass that packs instruction fields
// into 16-bit words.
package assembler

import (
	"fmt"
	"strings"
)

// Position identifies a point in the source text for diagnostics.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// ErrorKind categorizes a fatal assembly failure.
type ErrorKind int

const (
	ErrorLex ErrorKind = iota
	ErrorParse
	ErrorRange
	ErrorSymbol
)

// Error is a fatal assembly diagnostic. The assembler has no
// resynchronization: the first Error aborts assembly.
type Error struct {
	Pos     Position
	Kind    ErrorKind
	Message string
	Text    string // offending token text, when applicable
	Context string // the source line Pos points into
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: error: %s", e.Pos, e.Message)
	if e.Text != "" {
		fmt.Fprintf(&sb, " (got %q)", e.Text)
	}
	if e.Context != "" {
		fmt.Fprintf(&sb, "\n    %s", e.Context)
	}
	return sb.String()
}

func newError(pos Position, kind ErrorKind, text, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: kind, Text: text, Message: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal assembly diagnostic: something assembly can
// proceed past, unlike Error, which always aborts.
type Warning struct {
	Pos     Position
	Message string
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// ErrorList collects diagnostics from one assembly run: the Errors
// slice exists for parity with a caller that wants to gather more
// than one *Error into a single value (e.g. a batch-assembly driver),
// but Parse/Encode themselves never populate it — an *Error is always
// fatal and returned immediately, because this assembler has no
// resynchronization (spec.md §4.2/§7). Warnings is the slice the
// assembler itself does populate, one pass-1 run at a time.
type ErrorList struct {
	Errors   []*Error
	Warnings []*Warning
}

// AddError appends err to the list.
func (el *ErrorList) AddError(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddWarning appends w to the list.
func (el *ErrorList) AddWarning(w *Warning) {
	el.Warnings = append(el.Warnings, w)
}

// HasErrors reports whether any error was collected.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// HasWarnings reports whether any warning was collected.
func (el *ErrorList) HasWarnings() bool {
	return len(el.Warnings) > 0
}

// Error renders every collected error, one per line, so an *ErrorList
// itself satisfies the error interface.
func (el *ErrorList) Error() string {
	var sb strings.Builder
	for _, e := range el.Errors {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PrintWarnings renders every warning, one per line.
func (el *ErrorList) PrintWarnings() string {
	var sb strings.Builder
	for _, w := range el.Warnings {
		sb.WriteString(w.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// AsError turns the collected warnings into a single fatal *Error,
// for callers running with warnings-as-errors enabled. Returns nil if
// there are no warnings.
func (el *ErrorList) AsError() error {
	if !el.HasWarnings() {
		return nil
	}
	first := el.Warnings[0]
	return &Error{Pos: first.Pos, Kind: ErrorParse, Message: first.Message, Text: "warnings-as-errors"}
}
