package tseitin

import "github.com/mna/ymsat/literal"

// AddHalfAdder allocates sum and carry wires for a ⊕ b and a ∧ b and
// constrains them accordingly, returning (sum, carry).
func (e *Encoder) AddHalfAdder(a, b literal.Literal) (sum, carry literal.Literal, err error) {
	sum = e.NewOutputWire()
	carry = e.NewOutputWire()
	if err = e.AddXor(sum, a, b); err != nil {
		return 0, 0, err
	}
	if err = e.AddAnd(carry, a, b); err != nil {
		return 0, 0, err
	}
	return sum, carry, nil
}

// AddFullAdder allocates sum and carry-out wires for a + b + cin and
// constrains them: sum ⇔ a ⊕ b ⊕ cin, cout ⇔ majority(a, b, cin).
func (e *Encoder) AddFullAdder(a, b, cin literal.Literal) (sum, cout literal.Literal, err error) {
	sum = e.NewOutputWire()
	if err = e.AddXor(sum, a, b, cin); err != nil {
		return 0, 0, err
	}

	ab := e.NewWire()
	bc := e.NewWire()
	ac := e.NewWire()
	if err = e.AddAnd(ab, a, b); err != nil {
		return 0, 0, err
	}
	if err = e.AddAnd(bc, b, cin); err != nil {
		return 0, 0, err
	}
	if err = e.AddAnd(ac, a, cin); err != nil {
		return 0, 0, err
	}

	cout = e.NewOutputWire()
	if err = e.AddOr(cout, ab, bc, ac); err != nil {
		return 0, 0, err
	}
	return sum, cout, nil
}

// AddAdder builds a ripple-carry adder over two equal-length, LSB-first bit
// vectors and returns the sum vector, one bit longer than the inputs to
// carry the final carry-out (spec §4.7 add_adder).
func (e *Encoder) AddAdder(as, bs []literal.Literal) ([]literal.Literal, error) {
	if len(as) != len(bs) {
		return nil, lengthError("add_adder", len(as), len(bs))
	}

	carry := e.False()
	sum := make([]literal.Literal, 0, len(as)+1)
	for i := range as {
		s, c, err := e.AddFullAdder(as[i], bs[i], carry)
		if err != nil {
			return nil, err
		}
		sum = append(sum, s)
		carry = c
	}
	sum = append(sum, carry)
	return sum, nil
}

// Counter returns a binary-encoded, LSB-first bit vector counting how many
// of xs are True (spec §4.7 counter). Each input widens the running sum by
// one bit, so the result is len(xs) bits wide: never too narrow to hold the
// true count, and wider than the minimal ceil(log2(len(xs)+1)) bits once
// there are three or more inputs.
func (e *Encoder) Counter(xs []literal.Literal) ([]literal.Literal, error) {
	if len(xs) == 0 {
		return nil, nil
	}

	acc := []literal.Literal{xs[0]}
	for _, x := range xs[1:] {
		sum, err := e.AddAdder(acc, padTo(e, []literal.Literal{x}, len(acc)))
		if err != nil {
			return nil, err
		}
		acc = sum
	}
	return acc, nil
}

// padTo zero-extends a LSB-first bit vector to n bits using fresh False
// wires, following the zero-extension rule spec §4.7 uses for comparators
// and counters operating on mismatched widths.
func padTo(e *Encoder, xs []literal.Literal, n int) []literal.Literal {
	if len(xs) >= n {
		return xs[:n]
	}
	out := make([]literal.Literal, n)
	copy(out, xs)
	f := e.False()
	for i := len(xs); i < n; i++ {
		out[i] = f
	}
	return out
}
