package sat

import "github.com/mna/ymsat/literal"

// analyzeFinal walks the implication graph backwards from p (a literal
// currently True that conflicts with a falsified assumption) and returns
// every assumption literal, other than the one that failed outright, that
// participated in forcing it (spec §4.6 "analyze_final"). The caller is
// responsible for including the failed assumption literal itself in the
// conflict set; this function only finds the others.
func (s *Solver) analyzeFinal(p literal.Literal) []literal.Literal {
	var conflict []literal.Literal

	s.seenVar.Clear()
	s.seenVar.Add(p.VarID())

	for i := len(s.trail) - 1; i >= 0; i-- {
		l := s.trail[i]
		v := l.VarID()
		if !s.seenVar.Contains(v) {
			continue
		}

		r := s.reason[v]
		if r.isNone() {
			if s.level[v] > 0 {
				conflict = append(conflict, l)
			}
			continue
		}

		for _, q := range r.explain(s) {
			if s.level[q.VarID()] > 0 {
				s.seenVar.Add(q.VarID())
			}
		}
	}

	return conflict
}
