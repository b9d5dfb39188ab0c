package tally

import (
	"errors"
	"math"
	"testing"
)

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"5", 5},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"3.5+1.5", 5},
		{"2**10", 1024},
		{"2^10", 1024},
		{"2**3**2", 512}, // right-associative
		{"-2**2", -4},    // unary minus binds looser than power
		{"2**-1", 0.5},
		{"-3+5", 2},
		{"+7", 7},
		{"-(2+3)", -5},
		{"sqrt(16)", 4},
		{"abs(-5)", 5},
		{"log(1000)", 3},
		{"ln(e)", 1},
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"tan(0)", 0},
		{"pi", math.Pi},
		{"π", math.Pi},
		{"2*pi", 2 * math.Pi},
		{"sqrt(sqrt(16))", 2},
		{"sin(pi/2)", 1},
		{" 1 + 2 ", 3},
		{"2×3", 6},
		{"10÷4", 2.5},
	}

	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			got, err := evalExpression(test.expr)
			if err != nil {
				t.Fatalf("evalExpression(%q) failed: %v", test.expr, err)
			}
			if math.Abs(got-test.want) > 1e-12 {
				t.Fatalf("evalExpression(%q) = %v, want %v", test.expr, got, test.want)
			}
		})
	}
}

func TestEvalExpressionSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"trailing operator", "2+"},
		{"unbalanced open", "(2+3"},
		{"unbalanced close", "2)"},
		{"unknown function", "foo(2)"},
		{"double point", "2..3"},
		{"unterminated call", "sqrt("},
		{"missing argument", "sqrt()"},
		{"invalid character", "2#3"},
		{"function without paren", "sqrt 16"},
		{"adjacent numbers", "2 3"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := evalExpression(test.expr)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("evalExpression(%q) error = %v, want a SyntaxError", test.expr, err)
			}
			if syntaxErr.Expr != test.expr {
				t.Fatalf("SyntaxError.Expr = %q, want %q", syntaxErr.Expr, test.expr)
			}
		})
	}
}

func TestEvalExpressionNonFinite(t *testing.T) {
	tests := []string{"1/0", "0/0", "-1/0", "ln(0)", "10**10**10"}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := evalExpression(expr)
			if !errors.Is(err, ErrNonFinite) {
				t.Fatalf("evalExpression(%q) error = %v, want ErrNonFinite", expr, err)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := evalExpression("2+#")

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want a SyntaxError", err)
	}
	if syntaxErr.Pos != 2 {
		t.Fatalf("SyntaxError.Pos = %d, want 2", syntaxErr.Pos)
	}
}

func TestUsesScientificTokens(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123.45", false},
		{"2+3*4", false},
		{"(2+3)*4", false},
		{"sqrt(16)", true},
		{"2*π", true},
		{"2^10", true},
		{"e", true},
	}

	for _, test := range tests {
		if got := usesScientificTokens(test.in); got != test.want {
			t.Errorf("usesScientificTokens(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}
