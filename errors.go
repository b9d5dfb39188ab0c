package tally

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotFound is returned by a Store when no blob exists for a key.
	ErrNotFound = errors.New("not found")

	// ErrNonFinite is returned when an expression evaluates to NaN or an
	// infinity, for example after a division by zero.
	ErrNonFinite = errors.New("result is not a finite number")

	// ErrUnknownSetting is returned when toggling a setting key the engine
	// does not recognize.
	ErrUnknownSetting = errors.New("unknown setting")
)

// SyntaxError reports a malformed expression together with the rune position
// where parsing failed.
type SyntaxError struct {
	Expr string // The expression being evaluated
	Pos  int    // Rune offset of the offending token
	Msg  string // What went wrong
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d in %q: %s", e.Pos, e.Expr, e.Msg)
}
