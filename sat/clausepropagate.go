package sat

import (
	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

// propagate is invoked when literal l (one of c's two watched literals, in
// its negated form) has just become False. It implements spec §4.2 step 3.
// It returns false only if c is now conflicting. Otherwise it returns true:
// either c found a new literal to watch, or c is already satisfied, or c is
// unit and its forced literal has been enqueued. In every case c's watcher
// has been re-registered.
func (c *Clause) propagate(s *Solver, l literal.Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	if s.LitValue(c.literals[0]) == lbool.True {
		s.watchClause(c, l)
		return true
	}

	// Resume the search for a new watch from where the last search left off,
	// wrapping around once.
	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i := c.prevPos; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != lbool.False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], opp
			s.watchClause(c, c.literals[1].Opposite())
			return true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if s.LitValue(c.literals[i]) != lbool.False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], opp
			s.watchClause(c, c.literals[1].Opposite())
			return true
		}
	}

	// All literals but literals[0] are False: the clause is unit (or
	// conflicting if literals[0] is also False).
	s.watchClause(c, l)
	return s.enqueue(c.literals[0], clauseReason(c))
}
