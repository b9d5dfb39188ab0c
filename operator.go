package tally

import "math"

// Operator identifies a pending binary operation.
type Operator string

// The operators the engine understands. OpNone means no operation is pending.
const (
	OpNone     Operator = ""
	OpAdd      Operator = "add"
	OpSubtract Operator = "subtract"
	OpMultiply Operator = "multiply"
	OpDivide   Operator = "divide"
	OpPower    Operator = "power"
)

// operatorGlyphs maps operators to their display glyphs.
var operatorGlyphs = map[Operator]string{
	OpAdd:      "+",
	OpSubtract: "−",
	OpMultiply: "×",
	OpDivide:   "÷",
	OpPower:    "^",
}

// Glyph returns the display glyph for the operator, or an empty string for an
// unknown operator.
func (op Operator) Glyph() string {
	return operatorGlyphs[op]
}

// ParseOperator maps a keyboard character to an operator.
func ParseOperator(r rune) (Operator, bool) {
	switch r {
	case '+':
		return OpAdd, true
	case '-', '−':
		return OpSubtract, true
	case '*', '×':
		return OpMultiply, true
	case '/', '÷':
		return OpDivide, true
	case '^':
		return OpPower, true
	}
	return OpNone, false
}

// apply computes a binary operation. Division by zero follows IEEE semantics
// and yields an infinite or NaN value rather than an error; callers validate
// finiteness before presenting the result. An unknown operator returns the
// second operand unchanged.
func apply(op Operator, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	case OpPower:
		return math.Pow(a, b)
	default:
		return b
	}
}
