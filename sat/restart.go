package sat

import (
	"math"
	"sort"
)

// restartController implements one of spec §4.4's two interchangeable
// restart/reduce policies, selected by the `controller` configuration
// field.
type restartController interface {
	// conflictLimit returns the conflict budget for the round about to
	// start.
	conflictLimit() int64
	// learntLimit returns the current cap on the learnt-clause count.
	learntLimit() int64
	// onConflict is called once per conflict, before onRestart, so that
	// policies that grow the learnt limit on a conflict-count schedule
	// (rather than only at restarts) can do so.
	onConflict()
	// onRestart is called when the round's conflict limit is reached.
	onRestart()
}

// geometricController is the MiniSat-1 restart/reduce schedule: a conflict
// limit that grows geometrically by 1.5x per restart, and a learnt-clause
// limit that grows by 1.1x per restart.
type geometricController struct {
	conflict float64
	learnt   float64
}

func newGeometricController(numConstraints int) *geometricController {
	return &geometricController{
		conflict: 100,
		learnt:   float64(numConstraints) / 3,
	}
}

func (c *geometricController) conflictLimit() int64 { return int64(c.conflict) }
func (c *geometricController) learntLimit() int64    { return int64(c.learnt) }
func (c *geometricController) onConflict()           {}
func (c *geometricController) onRestart() {
	c.conflict *= 1.5
	c.learnt *= 1.1
}

// lubyController is the MiniSat-2 restart/reduce schedule: the conflict
// limit follows the Luby sequence, and the learnt limit grows by 10% every
// N conflicts, where N itself grows by 1.5x each time it fires.
type lubyController struct {
	restarts int64
	learnt   float64

	bumpPeriod       float64
	conflictsToBump  float64
}

func newLubyController(numConstraints int) *lubyController {
	return &lubyController{
		learnt:          float64(numConstraints) / 3,
		bumpPeriod:      100,
		conflictsToBump: 100,
	}
}

func (c *lubyController) conflictLimit() int64 {
	return int64(100 * luby(2.0, c.restarts))
}

func (c *lubyController) learntLimit() int64 { return int64(c.learnt) }

func (c *lubyController) onConflict() {
	c.conflictsToBump--
	if c.conflictsToBump <= 0 {
		c.learnt *= 1.1
		c.bumpPeriod *= 1.5
		c.conflictsToBump = c.bumpPeriod
	}
}

func (c *lubyController) onRestart() {
	c.restarts++
}

// luby returns the x-th term (0-indexed) of the Luby restart sequence,
// scaled by y: find the smallest k with 2^(k+1)-1 > x, then descend while
// matching, finally raising y to the resulting exponent (spec §4.4).
func luby(y float64, x int64) float64 {
	size, seq := int64(1), 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	return math.Pow(y, float64(seq))
}

func newRestartController(kind string, numConstraints int) restartController {
	if kind == "minisat2" {
		return newLubyController(numConstraints)
	}
	return newGeometricController(numConstraints)
}

// bumpClauseActivity increases c's activity, rescaling every learnt clause's
// activity if the bump pushes c's past the 1e100 ceiling.
func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc *= s.clauseDecay
}

// reduceDB implements spec §4.4's learnt-clause reduction: clauses are
// sorted so that (length-2, impossible here since binary learnts never
// reach this slice) and high-activity clauses sort last; the lower half is
// deleted unconditionally except for locked clauses, and the upper half is
// deleted only when its activity falls below clauseInc/len(learnts).
func (s *Solver) reduceDB() {
	if len(s.learnts) == 0 {
		return
	}
	lim := s.clauseInc / float64(len(s.learnts))

	sort.Slice(s.learnts, func(i, j int) bool {
		return s.learnts[i].activity < s.learnts[j].activity
	})

	i, j := 0, 0
	for ; i < len(s.learnts)/2; i++ {
		if s.learnts[i].locked(s) || s.learnts[i].isProtected() {
			s.learnts[j] = s.learnts[i]
			j++
		} else {
			s.deleteClause(s.learnts[i])
		}
	}
	for ; i < len(s.learnts); i++ {
		c := s.learnts[i]
		if !c.locked(s) && !c.isProtected() && c.activity < lim {
			s.deleteClause(c)
		} else {
			s.learnts[j] = c
			j++
		}
	}
	s.learnts = s.learnts[:j]
}
