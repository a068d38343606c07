package literal_test

import (
	"testing"

	"github.com/mna/ymsat/literal"
)

func TestPositiveNegative(t *testing.T) {
	for v := 0; v < 8; v++ {
		p := literal.Positive(v)
		n := literal.Negative(v)

		if got := p.VarID(); got != v {
			t.Errorf("Positive(%d).VarID() = %d, want %d", v, got, v)
		}
		if got := n.VarID(); got != v {
			t.Errorf("Negative(%d).VarID() = %d, want %d", v, got, v)
		}
		if !p.IsPositive() {
			t.Errorf("Positive(%d).IsPositive() = false, want true", v)
		}
		if n.IsPositive() {
			t.Errorf("Negative(%d).IsPositive() = true, want false", v)
		}
		if p.Opposite() != n {
			t.Errorf("Positive(%d).Opposite() = %v, want %v", v, p.Opposite(), n)
		}
		if n.Opposite() != p {
			t.Errorf("Negative(%d).Opposite() = %v, want %v", v, n.Opposite(), p)
		}
		if p.Opposite().Opposite() != p {
			t.Errorf("double negation is not identity for %d", v)
		}
	}
}

func TestString(t *testing.T) {
	if got, want := literal.Positive(3).String(), "3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := literal.Negative(3).String(), "!3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
