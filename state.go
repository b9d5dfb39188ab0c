package tally

// State is a read-only snapshot of the engine for rendering. It carries
// everything a display collaborator needs; the engine keeps exclusive
// ownership of the live state.
type State struct {
	// Display is the current entry, the last result, or the error marker.
	Display string

	// Preview is the pending-operation line, e.g. "12 +". It is empty
	// unless both a previous value and an operator are set.
	Preview string

	// Err reports whether the error marker is showing.
	Err bool
}

// State returns a snapshot of the current calculator state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := State{
		Display: e.display,
		Err:     e.display == DisplayError,
	}
	if e.hasPrev && e.pending != OpNone {
		state.Preview = Format(stringify(e.prev)) + " " + e.pending.Glyph()
	}
	return state
}
