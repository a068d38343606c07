// Package tseitin provides a definitional clause encoder on top of sat.Solver:
// logic gates, adders, cardinality constraints, and bit-vector comparators,
// each introducing exactly the clauses needed to constrain a fresh output
// literal to the corresponding boolean relation (spec §4.7).
package tseitin

import (
	"fmt"

	"github.com/mna/ymsat/literal"
	"github.com/mna/ymsat/sat"
)

// Encoder wraps a *sat.Solver with gate, arithmetic, cardinality, and
// comparator helpers. Apart from the cached True ground wire, it carries no
// state of its own beyond the solver: all bookkeeping (clause counts,
// variable counts) is read back from the solver via Size.
type Encoder struct {
	s *sat.Solver

	trueLit literal.Literal
	trueSet bool
}

// New returns an Encoder that adds clauses to s.
func New(s *sat.Solver) *Encoder {
	return &Encoder{s: s}
}

// Solver returns the underlying solver.
func (e *Encoder) Solver() *sat.Solver {
	return e.s
}

// Size mirrors sat.Size for the encoder's solver, following original_source's
// CnfSize bookkeeping (spec §9 supplemented features).
type Size = sat.Size

// Size returns the encoder's current clause-database size.
func (e *Encoder) Size() Size {
	return e.s.CNFSize()
}

// NewWire allocates a fresh, non-decision auxiliary variable: purely
// internal encoding glue that the caller never inspects and that never
// needs to compete for the decision heuristic's attention (spec §3
// "Variable", §4.6 "copy current truth values for all decision-eligible
// variables into the model" — keeping glue wires non-decision keeps them
// out of both the heap and the model).
func (e *Encoder) NewWire() literal.Literal {
	return e.s.NewVariable(false)
}

// NewOutputWire allocates a fresh decision-eligible variable for a wire an
// encoding hands back to the caller (an adder's sum bit, a counter's count
// bit): spec §4.6 only copies decision-eligible variables into the model
// on Sat, so a wire meant to be read back with ReadModel after Solve must
// be decision-eligible even though nothing ever branches on it directly.
func (e *Encoder) NewOutputWire() literal.Literal {
	return e.s.NewVariable(true)
}

// SetConditionalLiterals installs a clause prefix: every clause this
// Encoder adds until the next ClearConditionalLiterals also carries the
// negation of each literal in lits (spec §4.7).
func (e *Encoder) SetConditionalLiterals(lits []literal.Literal) {
	e.s.SetConditionalLiterals(lits)
}

// ClearConditionalLiterals removes a prefix installed by
// SetConditionalLiterals.
func (e *Encoder) ClearConditionalLiterals() {
	e.s.ClearConditionalLiterals()
}

func (e *Encoder) addClause(lits ...literal.Literal) error {
	return e.s.AddClause(lits)
}

// lengthError reports a bit-vector length mismatch for AddAdder (spec §6
// add_adder).
func lengthError(op string, a, b int) error {
	return fmt.Errorf("tseitin: %s: mismatched vector lengths %d and %d", op, a, b)
}
