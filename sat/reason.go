package sat

import "github.com/mna/ymsat/literal"

// reasonKind tags the antecedent of an assigned literal.
type reasonKind uint8

const (
	reasonNone reasonKind = iota
	reasonImplied
	reasonClause
)

// reason is the tagged union `Reason = None | Implied(Literal) | Clause(Handle)`
// from the design notes: every non-decision, non-top-level-unit assignment on
// the trail carries one, and conflict analysis walks it to resolve the
// implication graph. It is a small struct holding the tag, a literal and a
// clause pointer.
type reason struct {
	kind reasonKind
	lit  literal.Literal // valid when kind == reasonImplied
	cla  *Clause         // valid when kind == reasonClause
}

var noReason = reason{kind: reasonNone}

// impliedReason builds the reason for a literal forced by a binary clause:
// lit is the clause's other literal (the one that is currently False).
func impliedReason(lit literal.Literal) reason {
	return reason{kind: reasonImplied, lit: lit}
}

func clauseReason(c *Clause) reason {
	return reason{kind: reasonClause, cla: c}
}

func (r reason) isNone() bool {
	return r.kind == reasonNone
}

// explain returns the antecedent literals that forced the given assigned
// literal to True: the literals that, together, made the reason unit.
// Returned literals are themselves currently True (they are the "opposite"
// of the reason's False literals), matching how analyze expects to consume
// them (it negates each one again when adding it to the learnt clause).
func (r reason) explain(s *Solver) []literal.Literal {
	switch r.kind {
	case reasonImplied:
		s.tmpReason = s.tmpReason[:0]
		s.tmpReason = append(s.tmpReason, r.lit.Opposite())
		return s.tmpReason
	case reasonClause:
		return r.cla.explainAssign(s)
	default:
		panic("sat: explain called on an empty reason")
	}
}
