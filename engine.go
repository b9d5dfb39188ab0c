package tally

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Display sentinels.
const (
	// displayZero is the initial display value.
	displayZero = "0"

	// DisplayError is the marker shown after an evaluation failure. It is
	// distinct from any numeric rendering and clears itself after a fixed
	// delay.
	DisplayError = "Error"
)

// defaultClearDelay is how long the error marker stays visible before the
// engine resets itself.
const defaultClearDelay = 1500 * time.Millisecond

// NowFunc defines a function that returns the current time.
type NowFunc func() time.Time

// Engine is the calculator state machine. It owns the display, the previous
// operand, the pending operator, and the awaiting-new-operand flag, and
// dispatches keystroke-level commands against them.
//
// All exported methods are safe for concurrent use; each command is a single
// atomic state transition.
type Engine struct {
	mu       sync.Mutex
	display  string
	prev     float64
	hasPrev  bool
	pending  Operator
	awaiting bool

	history    *History
	settings   *Settings
	feedback   FeedbackFunc
	nowFunc    NowFunc
	clearDelay time.Duration
	clearTimer *time.Timer
}

// New creates an engine in its initial state: display "0", no previous
// value, no pending operator.
func New(options ...Option) *Engine {
	engine := &Engine{
		display:    displayZero,
		nowFunc:    time.Now,
		clearDelay: defaultClearDelay,
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// InputDigit processes a digit or decimal point keystroke. When a new
// operand is awaited the token replaces the display; a leading "0" collapses
// on the first non-point digit; a second decimal point in the operand being
// typed is rejected.
func (e *Engine) InputDigit(tok string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackNumber)

	switch {
	case e.awaiting || e.display == DisplayError:
		e.display = tok
		e.awaiting = false
	case e.display == displayZero && tok != ".":
		e.display = tok
	case tok == "." && strings.Contains(currentOperand(e.display), "."):
		// Second point in the current operand: no-op.
	default:
		e.display += tok
	}
}

// InputOperator records a pending binary operation. If one is already
// pending it is resolved first against the current display — chained
// evaluation is strictly left to right, with no precedence.
func (e *Engine) InputOperator(op Operator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	current, err := strconv.ParseFloat(e.display, 64)
	if err != nil {
		// A half-typed expression has no numeric value to chain; the NaN
		// propagates and surfaces as an evaluation failure.
		current = math.NaN()
	}

	if !e.hasPrev {
		e.prev, e.hasPrev = current, true
	} else if e.pending != OpNone {
		result := apply(e.pending, e.prev, current)
		e.prev = result
		e.display = stringify(result)
	}

	e.pending = op
	e.awaiting = true
}

// Evaluate resolves the current entry: the pending binary operation when one
// is armed, otherwise the display treated as a scientific expression with
// full operator precedence. A completed evaluation is recorded in history
// when the history setting is on; a non-finite result is an evaluation
// failure that shows the error marker and schedules the timed reset.
func (e *Engine) Evaluate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackEquals)

	var (
		result     float64
		expression string
		record     bool
	)

	if e.pending != OpNone && e.hasPrev {
		current, err := strconv.ParseFloat(e.display, 64)
		if err != nil {
			e.fail()
			return
		}
		result = apply(e.pending, e.prev, current)
		expression = Format(stringify(e.prev)) + " " + e.pending.Glyph() + " " + Format(e.display)
		record = true
	} else {
		v, err := evalExpression(e.display)
		if err != nil {
			e.fail()
			return
		}
		result = v
		expression = e.display
		record = usesScientificTokens(e.display)
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		e.fail()
		return
	}

	e.display = stringify(result)
	e.prev, e.hasPrev = 0, false
	e.pending = OpNone
	e.awaiting = true

	if record {
		e.record(expression, e.display)
	}
}

// Clear resets to the initial state unconditionally.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackClear)

	e.reset()
}

// Backspace drops the last character of the current entry. A single
// character, or the error marker, resets the display to "0".
func (e *Engine) Backspace() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackClick)

	runes := []rune(e.display)
	if len(runes) > 1 && e.display != DisplayError {
		e.display = string(runes[:len(runes)-1])
	} else {
		e.display = displayZero
	}
}

// InputFunction starts a scientific function call: "sin" appends "sin(" to
// the entry, replacing it when a fresh operand is expected.
func (e *Engine) InputFunction(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	e.appendToken(name + "(")
}

// InputConstant appends a named constant such as "π" or "e".
func (e *Engine) InputConstant(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackNumber)

	e.appendToken(name)
}

// InputParen appends an opening or closing parenthesis.
func (e *Engine) InputParen(tok string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	e.appendToken(tok)
}

// InputToken appends a raw expression character, the path a keyboard
// collaborator uses to type operators inside a scientific expression such as
// "2+3*4".
func (e *Engine) InputToken(tok string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	e.appendToken(tok)
}

// Square replaces the display with its square immediately, unlike the
// deferred binary power operator.
func (e *Engine) Square() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	v, err := strconv.ParseFloat(e.display, 64)
	if err != nil {
		e.fail()
		return
	}
	result := v * v
	if math.IsNaN(result) || math.IsInf(result, 0) {
		e.fail()
		return
	}
	e.display = stringify(result)
}

// Factorial replaces the display with n! for a non-negative integer n up to
// 170 — the largest factorial representable in a float64. Anything outside
// that domain is an evaluation failure.
func (e *Engine) Factorial() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	v, err := strconv.ParseFloat(e.display, 64)
	if err != nil || v < 0 || v > 170 || v != math.Trunc(v) {
		e.fail()
		return
	}

	result := 1.0
	for i := 2.0; i <= v; i++ {
		result *= i
	}
	e.display = stringify(result)
}

// Percent divides the display by 100 immediately.
func (e *Engine) Percent() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackOperator)

	v, err := strconv.ParseFloat(e.display, 64)
	if err != nil {
		e.fail()
		return
	}
	e.display = stringify(v / 100)
}

// ToggleSetting flips one boolean setting and persists it. It is a no-op
// when no settings store is attached.
func (e *Engine) ToggleSetting(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackClick)

	if e.settings == nil {
		return nil
	}
	return e.settings.Toggle(key)
}

// LoadHistoryResult replaces the display with a past result. Any pending
// operation is dropped and the next digit starts a fresh operand.
func (e *Engine) LoadHistoryResult(result string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelClear()
	e.emit(FeedbackClick)

	e.display = result
	e.prev, e.hasPrev = 0, false
	e.pending = OpNone
	e.awaiting = true
}

// appendToken appends an expression token, replacing the display when a
// fresh operand is expected. Callers hold the mutex.
func (e *Engine) appendToken(tok string) {
	if e.awaiting || e.display == displayZero || e.display == DisplayError {
		e.display = tok
		e.awaiting = false
		return
	}
	e.display += tok
}

// record appends to history when a store is attached and the history setting
// is on. Persistence is best-effort and never surfaces on the calculation
// path. Callers hold the mutex.
func (e *Engine) record(expression, result string) {
	if e.history == nil {
		return
	}
	if e.settings != nil && !e.settings.On(SettingHistory) {
		return
	}
	_ = e.history.Add(HistoryEntry{
		Expression: expression,
		Result:     Format(result),
		Time:       e.nowFunc(),
	})
}

// fail switches the display to the error marker and schedules the timed
// self-clear. The callback re-checks the marker so a late-firing reset can
// never clobber state the user has already moved past. Callers hold the
// mutex.
func (e *Engine) fail() {
	e.display = DisplayError
	e.prev, e.hasPrev = 0, false
	e.pending = OpNone
	e.awaiting = false

	e.clearTimer = time.AfterFunc(e.clearDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.display == DisplayError {
			e.reset()
		}
	})
}

// cancelClear stops a pending error self-clear. Every command calls this
// before mutating state. Callers hold the mutex.
func (e *Engine) cancelClear() {
	if e.clearTimer != nil {
		e.clearTimer.Stop()
		e.clearTimer = nil
	}
}

// reset restores the initial state. Callers hold the mutex.
func (e *Engine) reset() {
	e.display = displayZero
	e.prev, e.hasPrev = 0, false
	e.pending = OpNone
	e.awaiting = false
}

// emit sends the semantic tag for the current command to the feedback
// collaborator, if one is attached. Callers hold the mutex.
func (e *Engine) emit(tag Feedback) {
	if e.feedback != nil {
		e.feedback(tag)
	}
}

// stringify renders a computed value back into the display in its shortest
// round-trippable form. Presentation formatting is Format's job.
func stringify(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// currentOperand returns the trailing run of digits and points in the
// display. The duplicate-point check inspects only this run, so a point
// inside an earlier function argument does not block one in the operand
// being typed.
func currentOperand(display string) string {
	runes := []rune(display)
	i := len(runes)
	for i > 0 {
		r := runes[i-1]
		if (r >= '0' && r <= '9') || r == '.' {
			i--
		} else {
			break
		}
	}
	return string(runes[i:])
}
