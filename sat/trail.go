package sat

import (
	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

// decisionLevel returns the current decision level: the number of decisions
// (or pushed assumptions) made since the last backtrack to level 0.
func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// LitValue returns the current truth value of l.
func (s *Solver) LitValue(l literal.Literal) lbool.LBool {
	return s.assigns[l]
}

// VarValue returns the current truth value of variable v's positive
// literal.
func (s *Solver) VarValue(v int) lbool.LBool {
	return s.assigns[literal.Positive(v)]
}

// enqueue records l as True with the given reason. It returns false if l
// was already False (a conflicting assignment); true otherwise, including
// when l was already True.
func (s *Solver) enqueue(l literal.Literal, from reason) bool {
	switch s.LitValue(l) {
	case lbool.False:
		return false
	case lbool.True:
		return true
	default:
		varID := l.VarID()
		s.assigns[l] = lbool.True
		s.assigns[l.Opposite()] = lbool.False
		s.level[varID] = s.decisionLevel()
		s.reason[varID] = from
		s.trail = append(s.trail, l)
		s.propQueue.Push(l)
		return true
	}
}

// undoOne unassigns the most recently trailed literal.
func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()

	val := s.VarValue(v)
	s.heap.reinsert(v, val)

	s.assigns[l] = lbool.Unknown
	s.assigns[l.Opposite()] = lbool.Unknown
	s.reason[v] = noReason
	s.level[v] = -1

	s.trail = s.trail[:len(s.trail)-1]
}

// assume pushes a new decision level and assigns l as a decision (reason
// None). It returns false if l conflicts with the current assignment.
func (s *Solver) assume(l literal.Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(l, noReason)
}

// cancel undoes every assignment made since the last pushed decision level.
func (s *Solver) cancel() {
	c := len(s.trail) - s.trailLim[len(s.trailLim)-1]
	for ; c != 0; c-- {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

// cancelUntil backtracks to the given decision level.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancel()
	}
}
