package tseitin

import "github.com/mna/ymsat/literal"

// True returns a literal permanently fixed to True, introducing a single
// ground wire and unit clause the first time it is called on this encoder.
func (e *Encoder) True() literal.Literal {
	if !e.trueSet {
		v := e.NewWire()
		e.trueLit = v
		e.trueSet = true
		// AddClause at this point can only fail if the solver already
		// detected top-level unsatisfiability on an earlier clause; the
		// ground wire is otherwise always satisfiable on its own.
		_ = e.addClause(v)
	}
	return e.trueLit
}

// False returns a literal permanently fixed to False.
func (e *Encoder) False() literal.Literal {
	return e.True().Opposite()
}

// AddBuf constrains o to equal x: o ⇔ x.
func (e *Encoder) AddBuf(o, x literal.Literal) error {
	if err := e.addClause(o.Opposite(), x); err != nil {
		return err
	}
	return e.addClause(o, x.Opposite())
}

// AddNot constrains o to equal ¬x: o ⇔ ¬x.
func (e *Encoder) AddNot(o, x literal.Literal) error {
	if err := e.addClause(o.Opposite(), x.Opposite()); err != nil {
		return err
	}
	return e.addClause(o, x)
}

// AddAnd constrains o to equal the conjunction of ins: o ⇔ (in1 ∧ ... ∧ inn).
// It implements spec §4.7's AND gate: one binary clause (¬o ∨ ini) per input
// pins o False whenever any input is False, and a single (o ∨ ¬in1 ∨ ... ∨
// ¬inn) clause pins o True whenever every input is True.
func (e *Encoder) AddAnd(o literal.Literal, ins ...literal.Literal) error {
	big := make([]literal.Literal, 0, len(ins)+1)
	big = append(big, o)
	for _, x := range ins {
		if err := e.addClause(o.Opposite(), x); err != nil {
			return err
		}
		big = append(big, x.Opposite())
	}
	return e.addClause(big...)
}

// AddOr constrains o to equal the disjunction of ins: o ⇔ (in1 ∨ ... ∨ inn).
func (e *Encoder) AddOr(o literal.Literal, ins ...literal.Literal) error {
	big := make([]literal.Literal, 0, len(ins)+1)
	big = append(big, o.Opposite())
	for _, x := range ins {
		if err := e.addClause(o, x.Opposite()); err != nil {
			return err
		}
		big = append(big, x)
	}
	return e.addClause(big...)
}

// AddNand constrains o to equal the negation of the conjunction of ins.
func (e *Encoder) AddNand(o literal.Literal, ins ...literal.Literal) error {
	return e.AddAnd(o.Opposite(), ins...)
}

// AddNor constrains o to equal the negation of the disjunction of ins.
func (e *Encoder) AddNor(o literal.Literal, ins ...literal.Literal) error {
	return e.AddOr(o.Opposite(), ins...)
}

// AddXor constrains o to equal the parity (n-ary XOR) of ins. Per spec §4.7
// the relation is encoded over all 2^n parity lines: for every assignment of
// the n inputs there is exactly one clause forbidding that assignment paired
// with the wrong value of o.
func (e *Encoder) AddXor(o literal.Literal, ins ...literal.Literal) error {
	n := len(ins)
	for mask := 0; mask < 1<<uint(n); mask++ {
		lits := make([]literal.Literal, 0, n+1)
		parity := false
		for i, x := range ins {
			if mask&(1<<uint(i)) != 0 {
				parity = !parity
				lits = append(lits, x.Opposite())
			} else {
				lits = append(lits, x)
			}
		}
		if parity {
			lits = append(lits, o)
		} else {
			lits = append(lits, o.Opposite())
		}
		if err := e.addClause(lits...); err != nil {
			return err
		}
	}
	return nil
}

// AddXnor constrains o to equal the negation of the parity of ins.
func (e *Encoder) AddXnor(o literal.Literal, ins ...literal.Literal) error {
	return e.AddXor(o.Opposite(), ins...)
}

// AddImplies constrains o to equal (a → b).
func (e *Encoder) AddImplies(o, a, b literal.Literal) error {
	if err := e.addClause(o.Opposite(), a.Opposite(), b); err != nil {
		return err
	}
	if err := e.addClause(o, a); err != nil {
		return err
	}
	return e.addClause(o, b.Opposite())
}

// AddIff constrains o to equal (a ⇔ b); equivalent to AddXnor(o, a, b) but
// kept as its own entry point to match spec §4.7's named gate list.
func (e *Encoder) AddIff(o, a, b literal.Literal) error {
	return e.AddXnor(o, a, b)
}
