package tally

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// unaryFuncs is the fixed vocabulary of unary functions the evaluator
// accepts. Trigonometric functions take radians; log is base 10, ln natural.
var unaryFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"log":  math.Log10,
	"ln":   math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
}

// constants is the fixed vocabulary of named constants.
var constants = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPower
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	val  float64 // Set for tokenNumber
	pos  int     // Rune offset in the source
}

// describe renders a token for error messages.
func (t token) describe() string {
	if t.kind == tokenEOF {
		return "end of expression"
	}
	return strconv.Quote(t.text)
}

// tokenize splits an expression into tokens. Numbers are decimal digits with
// at most one point; there are no exponent literals, so "e" always names the
// constant. The ** and ^ spellings of the power operator are equivalent.
func tokenize(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)

	op := func(kind tokenKind, text string, pos int) {
		tokens = append(tokens, token{kind: kind, text: text, pos: pos})
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.':
			start := i
			sawPoint := false
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.') {
				if runes[i] == '.' {
					if sawPoint {
						return nil, &SyntaxError{Expr: src, Pos: i, Msg: "unexpected second decimal point"}
					}
					sawPoint = true
				}
				i++
			}
			text := string(runes[start:i])
			val, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &SyntaxError{Expr: src, Pos: start, Msg: fmt.Sprintf("invalid number %q", text)}
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text, val: val, pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[start:i]), pos: start})
		case r == '+':
			op(tokenPlus, "+", i)
			i++
		case r == '-' || r == '−':
			op(tokenMinus, "-", i)
			i++
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				op(tokenPower, "**", i)
				i += 2
			} else {
				op(tokenStar, "*", i)
				i++
			}
		case r == '×':
			op(tokenStar, "*", i)
			i++
		case r == '/' || r == '÷':
			op(tokenSlash, "/", i)
			i++
		case r == '^':
			op(tokenPower, "^", i)
			i++
		case r == '(':
			op(tokenLParen, "(", i)
			i++
		case r == ')':
			op(tokenRParen, ")", i)
			i++
		default:
			return nil, &SyntaxError{Expr: src, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	tokens = append(tokens, token{kind: tokenEOF, pos: len(runes)})
	return tokens, nil
}

// exprParser is a precedence-climbing parser-evaluator over the token stream.
type exprParser struct {
	src    string
	tokens []token
	i      int
}

func (p *exprParser) cur() token {
	return p.tokens[p.i]
}

// next consumes and returns the current token. EOF is never consumed, so an
// unterminated expression fails cleanly instead of running off the stream.
func (p *exprParser) next() token {
	t := p.tokens[p.i]
	if t.kind != tokenEOF {
		p.i++
	}
	return t
}

func (p *exprParser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Expr: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// evalExpression evaluates a scientific expression in the fixed calculator
// grammar and returns a finite result. Malformed input yields a SyntaxError;
// a NaN or infinite result yields ErrNonFinite. It never returns a partial
// result alongside a nil error.
func evalExpression(src string) (float64, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return 0, err
	}

	p := &exprParser{src: src, tokens: tokens}
	if p.cur().kind == tokenEOF {
		return 0, p.errorf(p.cur(), "empty expression")
	}

	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	if t := p.cur(); t.kind != tokenEOF {
		return 0, p.errorf(t, "unexpected %s", t.describe())
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// parseSum handles + and -, the lowest precedence level.
func (p *exprParser) parseSum() (float64, error) {
	v, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		switch p.cur().kind {
		case tokenPlus:
			p.next()
			rhs, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v += rhs
		case tokenMinus:
			p.next()
			rhs, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

// parseProduct handles * and /.
func (p *exprParser) parseProduct() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.cur().kind {
		case tokenStar:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case tokenSlash:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

// parseUnary handles unary minus and plus. The minus binds looser than the
// power operator, so -2**2 is -(2**2).
func (p *exprParser) parseUnary() (float64, error) {
	switch p.cur().kind {
	case tokenMinus:
		p.next()
		v, err := p.parseUnary()
		return -v, err
	case tokenPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles ** and ^, right-associative: 2**3**2 is 2**(3**2).
func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if p.cur().kind == tokenPower {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

// parsePrimary handles numbers, constants, function calls, and parentheses.
func (p *exprParser) parsePrimary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokenNumber:
		return t.val, nil

	case tokenIdent:
		if c, ok := constants[t.text]; ok {
			return c, nil
		}
		fn, ok := unaryFuncs[t.text]
		if !ok {
			return 0, p.errorf(t, "unknown name %q", t.text)
		}
		open := p.next()
		if open.kind != tokenLParen {
			return 0, p.errorf(open, "expected ( after %q, got %s", t.text, open.describe())
		}
		arg, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return 0, p.errorf(closing, "expected ), got %s", closing.describe())
		}
		return fn(arg), nil

	case tokenLParen:
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return 0, p.errorf(closing, "expected ), got %s", closing.describe())
		}
		return v, nil
	}

	return 0, p.errorf(t, "unexpected %s", t.describe())
}

// usesScientificTokens reports whether display text contains a function,
// constant, or caret token. Only such entries are recorded in history after
// a scientific evaluation; a plain number round-trips silently.
func usesScientificTokens(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || r == '^' {
			return true
		}
	}
	return false
}
