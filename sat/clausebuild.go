package sat

import (
	"sort"

	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

// addConstraintClause normalizes and installs a root-level constraint
// clause: literals are sorted, duplicates dropped, already-False literals
// dropped, and the clause is discarded as trivially satisfied if it is a
// tautology or contains a True literal. It implements spec §4.1
// add_constraint_clause. The returned bool is false only when the clause
// reduces to the empty clause (top-level unsatisfiability) or a unit
// assignment conflicts with the existing trail.
func (s *Solver) addConstraintClause(tmp []literal.Literal) (*Clause, bool) {
	sort.Slice(tmp, func(i, j int) bool { return tmp[i].Less(tmp[j]) })
	size := len(tmp)

	seen := make(map[literal.Literal]struct{}, size)
	for i := size - 1; i >= 0; i-- {
		if _, ok := seen[tmp[i].Opposite()]; ok {
			return nil, true // tautology: (x ∨ ¬x ∨ ...) is always true
		}
		if _, ok := seen[tmp[i]]; ok {
			size--
			tmp[i], tmp[size] = tmp[size], tmp[i]
			continue
		}
		seen[tmp[i]] = struct{}{}

		switch s.LitValue(tmp[i]) {
		case lbool.True:
			return nil, true // absorbed: already satisfied
		case lbool.False:
			size--
			tmp[i], tmp[size] = tmp[size], tmp[i]
		}
	}
	tmp = tmp[:size]

	return s.finishAddClause(tmp, false)
}

// addLearntClause installs a learnt clause produced by conflict analysis.
// lits[0] is the asserting literal; lits[1] is guaranteed by the analyzer to
// carry the maximum decision level among lits[1:]. It implements spec §4.1
// add_learnt_clause.
func (s *Solver) addLearntClause(lits []literal.Literal) *Clause {
	c, _ := s.finishAddClause(lits, true)
	r := clauseReasonOrNone(c)
	if len(lits) == 2 {
		r = impliedReason(lits[1])
	}
	s.enqueue(lits[0], r)
	if c != nil {
		s.learnts = append(s.learnts, c)
	}
	return c
}

func clauseReasonOrNone(c *Clause) reason {
	if c == nil {
		return noReason
	}
	return clauseReason(c)
}

// finishAddClause routes a normalized literal slice to the unit, binary, or
// full-clause-record path.
func (s *Solver) finishAddClause(lits []literal.Literal, learnt bool) (*Clause, bool) {
	switch len(lits) {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(lits[0], noReason)
	case 2:
		s.watchBinary(lits[0], lits[1])
		return nil, true
	default:
		c := &Clause{
			literals: append([]literal.Literal(nil), lits...),
			prevPos:  2,
		}
		if learnt {
			c.status |= statusLearnt
			s.bumpClauseActivity(c)

			maxLevel := -1
			wl := -1
			for i, l := range c.literals {
				if lvl := s.level[l.VarID()]; lvl > maxLevel {
					maxLevel = lvl
					wl = i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
		}

		s.watchClause(c, c.literals[0].Opposite())
		s.watchClause(c, c.literals[1].Opposite())
		return c, true
	}
}

// watchBinary installs the two Implied watchers for a new binary clause
// (a ∨ b): b is implied by ¬a, and a is implied by ¬b.
func (s *Solver) watchBinary(a, b literal.Literal) {
	s.watchers[a.Opposite()] = append(s.watchers[a.Opposite()], impliedWatcher(b))
	s.watchers[b.Opposite()] = append(s.watchers[b.Opposite()], impliedWatcher(a))
}

// watchClause attaches c to the watch list of "on", the literal whose
// falsification should wake c up for re-examination.
func (s *Solver) watchClause(c *Clause, on literal.Literal) {
	s.watchers[on] = append(s.watchers[on], clauseWatcher(c))
}

// unwatchClause removes c's watcher entries after it has been deleted.
func (s *Solver) unwatchClause(c *Clause) {
	s.removeWatcher(c.literals[0].Opposite(), c)
	s.removeWatcher(c.literals[1].Opposite(), c)
}

func (s *Solver) removeWatcher(on literal.Literal, c *Clause) {
	ws := s.watchers[on]
	j := 0
	for i := range ws {
		if ws[i].kind == watchClause && ws[i].cla == c {
			continue
		}
		ws[j] = ws[i]
		j++
	}
	s.watchers[on] = ws[:j]
}

// deleteClause removes a learnt clause from the watch lists. Locked clauses
// (the reason of their own asserting literal) must never be deleted.
func (s *Solver) deleteClause(c *Clause) {
	s.unwatchClause(c)
	c.literals = nil
}
