package sat

import (
	"strings"

	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

type clauseStatus uint8

const (
	statusLearnt    clauseStatus = 0b001
	statusProtected clauseStatus = 0b010
)

// Clause is an allocated clause record, created with at least three
// literals: unit clauses are assigned directly and binary clauses live only
// as Implied watchers (see watcher.go). Two exceptions hold fewer: the
// solver's scratch clause, which carries a two-literal binary conflict, and
// a record that root-level simplification has shortened by dropping False
// literals. Positions 0 and 1 hold the two watched literals and may be
// swapped by the propagator.
type Clause struct {
	activity float64 // learnt only

	// The clause's literals. Has at least 3 elements when the clause is
	// created (see the type comment for the exceptions).
	literals []literal.Literal

	// Position to resume the "find a new literal to watch" scan from, so
	// that repeated propagation on a long clause doesn't always restart at
	// index 2. Always in [2, len(literals)-1] when valid.
	prevPos int

	// Literal block distance. Nothing in the package sets or reads this
	// field: reduceDB ranks learnt clauses by activity only, and the LBD
	// average printed in verbose mode is computed by Solver.lbd.
	lbd int

	status clauseStatus
}

func (c *Clause) isLearnt() bool {
	return c.status&statusLearnt != 0
}

func (c *Clause) isProtected() bool {
	return c.status&statusProtected != 0
}

func (c *Clause) setProtected() {
	c.status |= statusProtected
}

func (c *Clause) clearProtected() {
	c.status &^= statusProtected
}

// locked reports whether c is currently the reason for its first literal,
// meaning it must not be deleted by the reduce policy.
func (c *Clause) locked(s *Solver) bool {
	r := s.reason[c.literals[0].VarID()]
	return r.kind == reasonClause && r.cla == c
}

// simplify drops literals already known False and reports whether the
// clause is satisfied at the root level (and can therefore be discarded).
func (c *Clause) simplify(s *Solver) bool {
	j := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case lbool.True:
			return true
		case lbool.False:
			// discard
		default:
			c.literals[j] = l
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// explainFailure returns the antecedents explaining why c is currently
// false in its entirety (a conflicting clause): the negation of every
// literal, each of which is presently True.
func (c *Clause) explainFailure(s *Solver) []literal.Literal {
	s.tmpReason = s.tmpReason[:0]
	for _, l := range c.literals {
		s.tmpReason = append(s.tmpReason, l.Opposite())
	}
	if c.isLearnt() {
		s.bumpClauseActivity(c)
	}
	return s.tmpReason
}

// explainAssign returns the antecedents explaining why c forced its first
// literal to True: the negation of every other literal.
func (c *Clause) explainAssign(s *Solver) []literal.Literal {
	s.tmpReason = s.tmpReason[:0]
	for _, l := range c.literals[1:] {
		s.tmpReason = append(s.tmpReason, l.Opposite())
	}
	if c.isLearnt() {
		s.bumpClauseActivity(c)
	}
	return s.tmpReason
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
