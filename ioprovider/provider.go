// Package ioprovider supplies the LC-3 VM's abstract byte-oriented I/O
// capability set, independent of any particular console front end.
package ioprovider

// Provider is the capability set the interpreter needs from whatever
// is standing in for the console: a blocking character source, a
// character sink, and a multi-character print used by TRAP PUTS/PUTSP.
type Provider interface {
	// GetChar blocks until a character is available and returns its code.
	GetChar() (byte, error)
	// PutChar writes a single character.
	PutChar(b byte) error
	// Print writes a string in one call, for routines that emit more
	// than one character at a time.
	Print(s string) error
}

// Poller is implemented by providers that can report input readiness
// without blocking. The VM's KBSR memory-mapped read uses this to
// poll for a keystroke the way a real LC-3 keyboard controller would;
// providers that can't support it (none in this package) simply leave
// KBSR always clear.
type Poller interface {
	// Poll reports whether a character is available, buffering it
	// internally if so, so the following GetChar call does not block
	// and does not lose the character the poll observed.
	Poll() bool
}
