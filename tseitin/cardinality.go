package tseitin

import "github.com/mna/ymsat/literal"

// AddAtMostK forbids every (k+1)-subset of xs from being simultaneously
// True: for each such subset, the clause of negated literals rules out that
// combination (spec §4.7 at_most_k).
func (e *Encoder) AddAtMostK(k int, xs []literal.Literal) error {
	if k < 0 {
		return e.addClause() // empty clause: immediately unsatisfiable
	}
	if k >= len(xs) {
		return nil
	}
	return forEachSubset(len(xs), k+1, func(idx []int) error {
		lits := make([]literal.Literal, len(idx))
		for i, j := range idx {
			lits[i] = xs[j].Opposite()
		}
		return e.addClause(lits...)
	})
}

// AddAtLeastK requires at least k of xs to be True: for every
// (n-k+1)-subset, the clause of positive literals rules out every
// assignment where that whole subset is False (spec §4.7 at_least_k).
func (e *Encoder) AddAtLeastK(k int, xs []literal.Literal) error {
	n := len(xs)
	if k <= 0 {
		return nil
	}
	if k > n {
		return e.addClause() // empty clause: immediately unsatisfiable
	}
	return forEachSubset(n, n-k+1, func(idx []int) error {
		lits := make([]literal.Literal, len(idx))
		for i, j := range idx {
			lits[i] = xs[j]
		}
		return e.addClause(lits...)
	})
}

// AddExactK constrains exactly k of xs to be True.
func (e *Encoder) AddExactK(k int, xs []literal.Literal) error {
	if err := e.AddAtMostK(k, xs); err != nil {
		return err
	}
	return e.AddAtLeastK(k, xs)
}

// AddNotOne forbids exactly one of xs from being True. For each index i it
// adds the clause ¬xi ∨ (∨_{j≠i} xj), which rules out exactly the
// assignment where xi alone is True; the conjunction over all i rules out
// every exactly-one assignment without needing auxiliary variables (spec
// §4.7 not_one = not(exact_one)).
func (e *Encoder) AddNotOne(xs []literal.Literal) error {
	n := len(xs)
	for i := 0; i < n; i++ {
		lits := make([]literal.Literal, 0, n)
		lits = append(lits, xs[i].Opposite())
		for j := 0; j < n; j++ {
			if j != i {
				lits = append(lits, xs[j])
			}
		}
		if err := e.addClause(lits...); err != nil {
			return err
		}
	}
	return nil
}

// forEachSubset calls f with the index set of every size-r subset of
// {0, ..., n-1}, in lexicographic order, stopping at the first error.
func forEachSubset(n, r int, f func(idx []int) error) error {
	if r < 0 || r > n {
		return nil
	}
	if r == 0 {
		return f(nil)
	}

	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		if err := f(idx); err != nil {
			return err
		}

		i := r - 1
		for i >= 0 && idx[i] == n-r+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
