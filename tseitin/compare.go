package tseitin

import "github.com/mna/ymsat/literal"

// align zero-extends as and bs, whichever is shorter, to a common length
// using fresh False wires (spec §4.7's zero-extension rule for comparators
// operating on mismatched widths).
func (e *Encoder) align(as, bs []literal.Literal) ([]literal.Literal, []literal.Literal) {
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	return padTo(e, as, n), padTo(e, bs, n)
}

// AddEq constrains the bit vectors as and bs (LSB-first) to be numerically
// equal: every bit pair must agree.
func (e *Encoder) AddEq(as, bs []literal.Literal) error {
	as, bs = e.align(as, bs)
	for i := range as {
		if err := e.addClause(as[i].Opposite(), bs[i]); err != nil {
			return err
		}
		if err := e.addClause(as[i], bs[i].Opposite()); err != nil {
			return err
		}
	}
	return nil
}

// AddNe constrains as and bs to be numerically unequal: at least one bit
// pair must disagree. A single aux wire per bit records whether that bit
// pair differs, and an OR over all of them forces at least one True.
func (e *Encoder) AddNe(as, bs []literal.Literal) error {
	as, bs = e.align(as, bs)
	diffs := make([]literal.Literal, len(as))
	for i := range as {
		d := e.NewWire()
		if err := e.AddXor(d, as[i], bs[i]); err != nil {
			return err
		}
		diffs[i] = d
	}
	return e.addClause(diffs...)
}

// AddLt constrains as < bs, both LSB-first bit vectors, numerically.
func (e *Encoder) AddLt(as, bs []literal.Literal) error {
	lt, err := e.lessThan(as, bs)
	if err != nil {
		return err
	}
	return e.addClause(lt)
}

// AddLe constrains as <= bs.
func (e *Encoder) AddLe(as, bs []literal.Literal) error {
	gt, err := e.lessThan(bs, as)
	if err != nil {
		return err
	}
	return e.addClause(gt.Opposite())
}

// AddGt constrains as > bs.
func (e *Encoder) AddGt(as, bs []literal.Literal) error {
	return e.AddLt(bs, as)
}

// AddGe constrains as >= bs.
func (e *Encoder) AddGe(as, bs []literal.Literal) error {
	return e.AddLe(bs, as)
}

// lessThan builds, from the least significant bit up, the standard
// ripple comparator: lt_i ⇔ (as[i] < bs[i]) ∨ (as[i] = bs[i] ∧ lt_{i-1}),
// starting from lt_{-1} = False, and returns the wire for the final
// (most significant) bit.
func (e *Encoder) lessThan(as, bs []literal.Literal) (literal.Literal, error) {
	as, bs = e.align(as, bs)
	lt := e.False()
	for i := 0; i < len(as); i++ {
		bitLt := e.NewWire() // ¬as[i] ∧ bs[i]
		if err := e.AddAnd(bitLt, as[i].Opposite(), bs[i]); err != nil {
			return 0, err
		}
		bitEq := e.NewWire() // as[i] ⇔ bs[i]
		if err := e.AddIff(bitEq, as[i], bs[i]); err != nil {
			return 0, err
		}
		carry := e.NewWire() // bitEq ∧ lt
		if err := e.AddAnd(carry, bitEq, lt); err != nil {
			return 0, err
		}
		next := e.NewWire()
		if err := e.AddOr(next, bitLt, carry); err != nil {
			return 0, err
		}
		lt = next
	}
	return lt, nil
}

// AddEqConst constrains the bit vector xs (LSB-first) to equal the
// non-negative integer constant c. A constant requiring more bits than xs
// carries after zero-extension makes the vector unsatisfiable outright
// (spec §4.7's out-of-range short-circuit).
func (e *Encoder) AddEqConst(xs []literal.Literal, c uint64) error {
	for i, x := range xs {
		if bitSet(c, i) {
			if err := e.addClause(x); err != nil {
				return err
			}
		} else {
			if err := e.addClause(x.Opposite()); err != nil {
				return err
			}
		}
	}
	if c>>uint(len(xs)) != 0 {
		return e.addClause() // c doesn't fit in len(xs) bits: unsatisfiable
	}
	return nil
}

// AddNeConst constrains xs != c.
func (e *Encoder) AddNeConst(xs []literal.Literal, c uint64) error {
	if c>>uint(len(xs)) != 0 {
		return nil // c can't be represented: constraint is a tautology
	}
	diffs := make([]literal.Literal, len(xs))
	for i, x := range xs {
		if bitSet(c, i) {
			diffs[i] = x.Opposite()
		} else {
			diffs[i] = x
		}
	}
	return e.addClause(diffs...)
}

// AddLtConst constrains xs < c.
func (e *Encoder) AddLtConst(xs []literal.Literal, c uint64) error {
	bs := e.constVector(c, len(xs))
	return e.AddLt(xs, bs)
}

// AddLeConst constrains xs <= c.
func (e *Encoder) AddLeConst(xs []literal.Literal, c uint64) error {
	bs := e.constVector(c, len(xs))
	return e.AddLe(xs, bs)
}

// AddGtConst constrains xs > c.
func (e *Encoder) AddGtConst(xs []literal.Literal, c uint64) error {
	bs := e.constVector(c, len(xs))
	return e.AddGt(xs, bs)
}

// AddGeConst constrains xs >= c.
func (e *Encoder) AddGeConst(xs []literal.Literal, c uint64) error {
	bs := e.constVector(c, len(xs))
	return e.AddGe(xs, bs)
}

// constVector returns a LSB-first constant bit vector wide enough to hold
// c, at least n bits, built from True/False ground wires.
func (e *Encoder) constVector(c uint64, n int) []literal.Literal {
	width := n
	for c>>uint(width) != 0 {
		width++
	}
	out := make([]literal.Literal, width)
	for i := range out {
		if bitSet(c, i) {
			out[i] = e.True()
		} else {
			out[i] = e.False()
		}
	}
	return out
}

func bitSet(c uint64, i int) bool {
	return c>>uint(i)&1 != 0
}
