// Package literal implements the compact integer encoding used throughout
// ymsat for boolean literals: a variable index and its polarity packed into
// a single non-negative integer.
package literal

import "fmt"

// Literal represents a boolean variable together with a polarity. Build one
// with Positive or Negative; the zero value is Positive(0).
type Literal int

// Positive returns the positive literal of variable v.
func Positive(v int) Literal {
	return Literal(v << 1)
}

// Negative returns the negative literal of variable v.
func Negative(v int) Literal {
	return Literal(v<<1 | 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) >> 1
}

// IsPositive reports whether l represents the variable's value directly
// (i.e. is not a negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Less orders literals by their underlying index, giving a total order
// consistent with the sorting pass used when normalizing clauses.
func (l Literal) Less(o Literal) bool {
	return l < o
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
