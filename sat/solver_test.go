package sat

import (
	"testing"
	"time"

	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	s, err := NewSolver(DefaultConfig())
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	return s
}

func vars(s *Solver, n int) []literal.Literal {
	out := make([]literal.Literal, n)
	for i := range out {
		out[i] = s.NewVariable(true)
	}
	return out
}

func mustAddClause(t *testing.T, s *Solver, lits ...literal.Literal) {
	t.Helper()
	if err := s.AddClause(lits); err != nil {
		t.Fatalf("AddClause(%v): %v", lits, err)
	}
}

func TestSolveTrivialSat(t *testing.T) {
	s := newTestSolver(t)
	x := vars(s, 1)[0]
	mustAddClause(t, s, x)

	if got := s.Solve(nil, 0); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if v := s.ReadModel(x); v != lbool.True {
		t.Errorf("ReadModel(x) = %v, want True", v)
	}
}

func TestSolveTrivialUnsat(t *testing.T) {
	s := newTestSolver(t)
	x := vars(s, 1)[0]
	mustAddClause(t, s, x)
	mustAddClause(t, s, x.Opposite())

	if got := s.Solve(nil, 0); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

// TestSolvePigeonhole encodes the classic unsatisfiable pigeonhole instance
// (4 pigeons, 3 holes: each pigeon in some hole, no hole with two pigeons)
// to exercise conflict analysis and clause learning beyond unit propagation.
func TestSolvePigeonhole(t *testing.T) {
	s := newTestSolver(t)
	const pigeons, holes = 4, 3

	x := make([][]literal.Literal, pigeons)
	for p := 0; p < pigeons; p++ {
		x[p] = vars(s, holes)
	}

	for p := 0; p < pigeons; p++ {
		mustAddClause(t, s, x[p]...)
	}
	for h := 0; h < holes; h++ {
		for p1 := 0; p1 < pigeons; p1++ {
			for p2 := p1 + 1; p2 < pigeons; p2++ {
				mustAddClause(t, s, x[p1][h].Opposite(), x[p2][h].Opposite())
			}
		}
	}

	if got := s.Solve(nil, 0); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

func TestSolveWithAssumptions(t *testing.T) {
	s := newTestSolver(t)
	lits := vars(s, 3)
	x1, x2, x3 := lits[0], lits[1], lits[2]

	// exactly one of x1, x2, x3 (at_most_one via pairwise, at_least_one via
	// a single clause), mirroring spec §8 scenario S4.
	mustAddClause(t, s, x1, x2, x3)
	mustAddClause(t, s, x1.Opposite(), x2.Opposite())
	mustAddClause(t, s, x1.Opposite(), x3.Opposite())
	mustAddClause(t, s, x2.Opposite(), x3.Opposite())

	for i, xi := range lits {
		got := s.Solve([]literal.Literal{xi}, 0)
		if got != Sat {
			t.Fatalf("Solve([x%d]) = %v, want Sat", i+1, got)
		}
		for j, xj := range lits {
			if j == i {
				continue
			}
			if v := s.ReadModel(xj); v != lbool.False {
				t.Errorf("Solve([x%d]): ReadModel(x%d) = %v, want False", i+1, j+1, v)
			}
		}
	}

	got := s.Solve([]literal.Literal{x1, x2}, 0)
	if got != Unsat {
		t.Fatalf("Solve([x1,x2]) = %v, want Unsat", got)
	}
	core := s.ConflictLiterals()
	if len(core) == 0 {
		t.Errorf("ConflictLiterals() is empty, want a nonempty core explaining the clash")
	}
}

func TestConflictBudgetStopsSearch(t *testing.T) {
	s := newTestSolver(t)
	const pigeons, holes = 6, 5
	x := make([][]literal.Literal, pigeons)
	for p := 0; p < pigeons; p++ {
		x[p] = vars(s, holes)
	}
	for p := 0; p < pigeons; p++ {
		mustAddClause(t, s, x[p]...)
	}
	for h := 0; h < holes; h++ {
		for p1 := 0; p1 < pigeons; p1++ {
			for p2 := p1 + 1; p2 < pigeons; p2++ {
				mustAddClause(t, s, x[p1][h].Opposite(), x[p2][h].Opposite())
			}
		}
	}

	s.SetConflictBudget(1)
	if got := s.Solve(nil, 0); got != Unknown {
		t.Fatalf("Solve() with a 1-conflict budget = %v, want Unknown", got)
	}
}

func TestStopReturnsUnknown(t *testing.T) {
	s := newTestSolver(t)
	x := vars(s, 1)[0]
	mustAddClause(t, s, x)
	s.Stop()

	if got := s.Solve(nil, time.Second); got != Unknown {
		t.Fatalf("Solve() after Stop() = %v, want Unknown", got)
	}
}

func TestAddClauseUndeclaredVariable(t *testing.T) {
	s := newTestSolver(t)
	bogus := literal.Positive(42)
	if err := s.AddClause([]literal.Literal{bogus}); err == nil {
		t.Fatal("AddClause with an undeclared variable: want error, got nil")
	}
}

func TestAddClauseAfterUnsat(t *testing.T) {
	s := newTestSolver(t)
	x := vars(s, 1)[0]
	mustAddClause(t, s, x)
	mustAddClause(t, s, x.Opposite())
	if s.Solve(nil, 0) != Unsat {
		t.Fatal("expected Unsat")
	}
	if err := s.AddClause([]literal.Literal{x}); err == nil {
		t.Fatal("AddClause after Unsat: want error, got nil")
	}
}

func TestNonDecisionVariableHiddenFromModel(t *testing.T) {
	s := newTestSolver(t)
	x := s.NewVariable(true)
	aux := s.NewVariable(false)
	mustAddClause(t, s, x, aux) // forces aux by unit propagation in some models

	if got := s.Solve(nil, 0); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if v := s.ReadModel(aux); v != lbool.Unknown {
		t.Errorf("ReadModel(aux) = %v, want Unknown (non-decision variables are hidden)", v)
	}
}

func TestConditionalLiterals(t *testing.T) {
	s := newTestSolver(t)
	x, guard := s.NewVariable(true), s.NewVariable(true)

	s.SetConditionalLiterals([]literal.Literal{guard})
	mustAddClause(t, s, x.Opposite()) // really (¬x ∨ ¬guard): only active when guard holds
	s.ClearConditionalLiterals()
	mustAddClause(t, s, x)
	mustAddClause(t, s, guard)

	// x must be True (unconditional clause) and guard True (unconditional
	// clause) forces the conditional clause to require ¬x, a direct clash.
	if got := s.Solve(nil, 0); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

func TestRestartControllers(t *testing.T) {
	for _, kind := range []string{"minisat1", "minisat2"} {
		t.Run(kind, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Controller = kind
			s, err := NewSolver(cfg)
			if err != nil {
				t.Fatalf("NewSolver: %v", err)
			}

			const pigeons, holes = 5, 4
			x := make([][]literal.Literal, pigeons)
			for p := 0; p < pigeons; p++ {
				x[p] = vars(s, holes)
			}
			for p := 0; p < pigeons; p++ {
				mustAddClause(t, s, x[p]...)
			}
			for h := 0; h < holes; h++ {
				for p1 := 0; p1 < pigeons; p1++ {
					for p2 := p1 + 1; p2 < pigeons; p2++ {
						mustAddClause(t, s, x[p1][h].Opposite(), x[p2][h].Opposite())
					}
				}
			}

			if got := s.Solve(nil, 0); got != Unsat {
				t.Fatalf("Solve() = %v, want Unsat", got)
			}
		})
	}
}
