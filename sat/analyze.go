package sat

import "github.com/mna/ymsat/literal"

// noLiteral is a sentinel used to represent "the conflict" (as opposed to a
// specific trail literal) while walking the implication graph; literal
// indices produced by literal.Positive/Negative are never negative.
const noLiteral literal.Literal = -1

// analyze performs First-UIP conflict analysis (spec §4.3): starting from
// the conflicting clause, it walks the implication graph backwards along
// the trail until exactly one literal at the current decision level remains
// (the first unique implication point), producing a learnt clause and the
// level to backtrack to.
func (s *Solver) analyze(confl *Clause) ([]literal.Literal, int) {
	pending := 0
	s.tmpLearnts = append(s.tmpLearnts[:0], noLiteral) // reserve slot 0 for the FUIP
	nextIdx := len(s.trail) - 1
	l := noLiteral
	s.seenVar.Clear()

	antecedents := confl.explainFailure(s)
	for {
		for _, q := range antecedents {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.heap.bump(v)

			if s.level[v] == s.decisionLevel() {
				pending++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
		}

		// Scan the trail backwards to find the next marked variable; its
		// (negated) literal becomes the next pivot to resolve through.
		for {
			l = s.trail[nextIdx]
			nextIdx--
			if s.seenVar.Contains(l.VarID()) {
				break
			}
		}

		pending--
		if pending <= 0 {
			break
		}
		antecedents = s.reason[l.VarID()].explain(s)
	}

	s.tmpLearnts[0] = l.Opposite()

	learnt := s.minimizeLearnt(s.tmpLearnts)
	backtrackLevel := s.reorderLearnt(learnt)
	return learnt, backtrackLevel
}

// minimizeLearnt applies self-subsuming ("recursive") minimization: a
// non-asserting literal p is dropped if every ancestor of p in the
// implication graph is either already present in the clause or assigned at
// decision level 0. A bitmap of the levels already present in the clause
// lets litRedundant short-circuit ancestors whose level can't possibly be
// covered (spec §4.3 "Minimization").
func (s *Solver) minimizeLearnt(learnt []literal.Literal) []literal.Literal {
	if len(learnt) <= 1 {
		return learnt
	}

	var levelMask uint64
	for _, p := range learnt[1:] {
		levelMask |= 1 << (uint(s.level[p.VarID()]) & 63)
	}

	j := 1
	for i := 1; i < len(learnt); i++ {
		p := learnt[i]
		if s.reason[p.VarID()].isNone() || !s.litRedundant(p, levelMask) {
			learnt[j] = p
			j++
		}
	}
	return learnt[:j]
}

// litRedundant reports whether every ancestor of p, explored iteratively
// via an explicit stack, is either already in the learnt clause (seen) or
// fixed at decision level 0.
func (s *Solver) litRedundant(p literal.Literal, levelMask uint64) bool {
	s.tmpAnalyzeStack = append(s.tmpAnalyzeStack[:0], p)

	for len(s.tmpAnalyzeStack) > 0 {
		cur := s.tmpAnalyzeStack[len(s.tmpAnalyzeStack)-1]
		s.tmpAnalyzeStack = s.tmpAnalyzeStack[:len(s.tmpAnalyzeStack)-1]

		for _, q := range s.reason[cur.VarID()].explain(s) {
			v := q.VarID()
			if s.seenVar.Contains(v) || s.level[v] == 0 {
				continue
			}
			if s.reason[v].isNone() || levelMask&(1<<(uint(s.level[v])&63)) == 0 {
				return false
			}
			s.seenVar.Add(v)
			s.tmpAnalyzeStack = append(s.tmpAnalyzeStack, q)
		}
	}
	return true
}

// reorderLearnt keeps learnt[0] (the asserting literal) in place and moves
// the literal of maximum decision level among learnt[1:] into learnt[1],
// returning that level as the backtrack level (spec §4.3 "Reorder"). A
// clause of length 1 backtracks to level 0.
func (s *Solver) reorderLearnt(learnt []literal.Literal) int {
	if len(learnt) < 2 {
		return 0
	}
	maxIdx, maxLevel := 1, s.level[learnt[1].VarID()]
	for i := 2; i < len(learnt); i++ {
		if lvl := s.level[learnt[i].VarID()]; lvl > maxLevel {
			maxLevel, maxIdx = lvl, i
		}
	}
	learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
	return maxLevel
}
