package sat

import (
	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

// propagate drains the propagation queue, walking watcher lists to perform
// unit propagation (spec §4.2). It returns the conflicting clause, or nil if
// the queue emptied without conflict. Watcher lists are compacted in place:
// tmpWatchers holds a snapshot of the list being scanned while watchers[l]
// is rebuilt with exactly the entries that remain attached.
func (s *Solver) propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()
		s.TotalPropagations++

		s.tmpWatchers = append(s.tmpWatchers[:0], s.watchers[l]...)
		s.watchers[l] = s.watchers[l][:0]

		for i := 0; i < len(s.tmpWatchers); i++ {
			w := s.tmpWatchers[i]

			if w.kind == watchImplied {
				b := w.lit
				switch s.LitValue(b) {
				case lbool.True:
					s.watchers[l] = append(s.watchers[l], w)
				case lbool.Unknown:
					s.watchers[l] = append(s.watchers[l], w)
					s.enqueue(b, impliedReason(l.Opposite()))
				case lbool.False:
					s.watchers[l] = append(s.watchers[l], w)
					s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
					s.propQueue.Clear()
					return s.conflictBinary(b, l.Opposite())
				}
				continue
			}

			if w.cla.propagate(s, l) {
				continue
			}

			// Conflict: copy remaining watchers back and report it.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return w.cla
		}
	}
	return nil
}

// conflictBinary materializes the conflict reason for a binary clause into
// the solver's single preallocated scratch clause (spec §3 "Binary
// clause"), avoiding an allocation on the hot conflict path.
func (s *Solver) conflictBinary(a, b literal.Literal) *Clause {
	s.scratch.literals = s.scratch.literals[:0]
	s.scratch.literals = append(s.scratch.literals, a, b)
	return s.scratch
}
