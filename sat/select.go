package sat

import (
	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

// decide pops the next decision literal per spec §4.5. It returns (0,
// false) once every decision-eligible variable is assigned, meaning the
// current partial assignment is already a full model.
func (s *Solver) decide() (literal.Literal, bool) {
	if n := s.heap.numVars(); n > 0 && s.opts.Selector.VarFreq > 0 && s.rnd.Float64() < s.opts.Selector.VarFreq {
		v := s.rnd.Intn(n)
		if s.heap.eligible[v] && s.VarValue(v) == lbool.Unknown {
			return s.polarize(v), true
		}
	}

	for {
		v, ok := s.heap.pop()
		if !ok {
			return 0, false
		}
		if s.VarValue(v) != lbool.Unknown {
			continue
		}
		return s.polarize(v), true
	}
}

// polarize picks the polarity for a freshly chosen decision variable: the
// cached phase if phase caching is on, otherwise the configured fixed
// fallback. NewVariable seeds every variable's cached phase with False, so
// with phase caching on a variable that has never been assigned is decided
// negative and the fixed fallback is not consulted.
func (s *Solver) polarize(v int) literal.Literal {
	if s.opts.Selector.PhaseCache {
		switch s.heap.phaseOf(v) {
		case lbool.True:
			return literal.Positive(v)
		case lbool.False:
			return literal.Negative(v)
		}
	}

	switch s.opts.Selector.Type {
	case "nega":
		return literal.Negative(v)
	case "wlposi":
		// Pick whichever polarity currently has fewer watchers, favoring the
		// positive literal on a tie.
		if len(s.watchers[literal.Negative(v)]) < len(s.watchers[literal.Positive(v)]) {
			return literal.Negative(v)
		}
		return literal.Positive(v)
	case "wlnega":
		// Same minimal-watcher-count rule, favoring the negative literal on a
		// tie.
		if len(s.watchers[literal.Negative(v)]) <= len(s.watchers[literal.Positive(v)]) {
			return literal.Negative(v)
		}
		return literal.Positive(v)
	case "random":
		if s.rnd.Intn(2) == 0 {
			return literal.Positive(v)
		}
		return literal.Negative(v)
	default: // "posi"
		return literal.Positive(v)
	}
}
