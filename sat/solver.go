package sat

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/mna/ymsat/internal/ring"
	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/literal"
)

// Solver is a single incremental CDCL instance (spec §2 "System overview").
// A zero Solver is not usable; construct one with NewSolver. Solver is not
// safe for concurrent use except for Stop, which may be called from any
// goroutine (spec §5).
type Solver struct {
	opts Options

	constraints []*Clause
	learnts     []*Clause
	clauseInc   float64
	clauseDecay float64

	heap *varHeap

	watchers  [][]watcher
	propQueue *ring.Queue[literal.Literal]

	assigns  []lbool.LBool
	trail    []literal.Literal
	trailLim []int
	reason   []reason
	level    []int

	seenVar *resetSet

	conditionalLits []literal.Literal

	sane bool

	model    []lbool.LBool
	hasModel bool

	conflictLits []literal.Literal

	lbdAvg EMA

	TotalConflicts    int64
	TotalDecisions    int64
	TotalPropagations int64
	TotalRestarts     int64

	startTime  time.Time
	timeLimit  time.Duration
	budgetHit  bool

	conflictBudget int64 // -1 means unlimited
	propBudget     int64 // -1 means unlimited

	stopFlag atomic.Bool

	rnd *rand.Rand

	scratch *Clause

	tmpWatchers     []watcher
	tmpLearnts      []literal.Literal
	tmpReason       []literal.Literal
	tmpAnalyzeStack []literal.Literal
}

// NewSolver validates cfg and returns a ready-to-use Solver, or a
// *ConfigurationError if cfg names an unknown engine type or option value
// (spec §7).
func NewSolver(cfg Config) (*Solver, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewSolverWithOptions(opts), nil
}

// NewSolverWithOptions builds a Solver directly from a resolved Options
// value, bypassing JSON configuration discovery.
func NewSolverWithOptions(opts Options) *Solver {
	return &Solver{
		opts:           opts,
		clauseInc:      1,
		clauseDecay:    opts.ClauseDecay,
		lbdAvg:         NewEMA(0.95),
		heap:           newVarHeap(opts.VariableDecay, opts.Selector.PhaseCache),
		propQueue:      ring.New[literal.Literal](128),
		seenVar:        &resetSet{},
		sane:           true,
		conflictBudget: -1,
		propBudget:     -1,
		rnd:            rand.New(rand.NewSource(1)),
		scratch:        &Clause{literals: make([]literal.Literal, 0, 2)},
	}
}

// Size reports the current clause-database size, supplementing spec §4.1
// with the bookkeeping original_source's encoder exposes for diagnostics.
type Size struct {
	Variables int
	Clauses   int
	Literals  int
}

// CNFSize returns the current number of declared variables, constraint
// clause records, and literals across those records. Only constraint
// clauses stored as records (three or more literals after normalization)
// are counted; binary clauses, which live only in watcher lists, and unit
// clauses are not.
func (s *Solver) CNFSize() Size {
	lits := 0
	for _, c := range s.constraints {
		lits += len(c.literals)
	}
	return Size{Variables: s.NumVariables(), Clauses: len(s.constraints), Literals: lits}
}

func (s *Solver) NumVariables() int  { return s.heap.numVars() }
func (s *Solver) NumConstraints() int { return len(s.constraints) }
func (s *Solver) NumLearnts() int     { return len(s.learnts) }
func (s *Solver) NumAssigns() int     { return len(s.trail) }

// NewVariable declares a new variable and returns its positive literal. When
// decision is false the variable is never chosen by the decision heuristic
// on its own (spec §3 Variable "decision-eligible"); it can still be forced
// by propagation or appear in clauses, which is how the Tseitin encoder's
// auxiliary wires are modeled.
func (s *Solver) NewVariable(decision bool) literal.Literal {
	v := s.heap.numVars()
	s.assigns = append(s.assigns, lbool.Unknown, lbool.Unknown)
	s.level = append(s.level, -1)
	s.reason = append(s.reason, noReason)
	s.watchers = append(s.watchers, nil, nil)
	s.seenVar.Expand()
	s.heap.addVar(0, false, decision)
	return literal.Positive(v)
}

// SetConditionalLiterals installs a clause prefix (spec §4.7): every clause
// added through AddClause until the next ClearConditionalLiterals is
// extended with the negation of each literal in lits, so that the clause is
// only active when all of them hold.
func (s *Solver) SetConditionalLiterals(lits []literal.Literal) {
	s.conditionalLits = append(s.conditionalLits[:0], lits...)
}

// ClearConditionalLiterals removes any conditional-literal prefix installed
// by SetConditionalLiterals.
func (s *Solver) ClearConditionalLiterals() {
	s.conditionalLits = s.conditionalLits[:0]
}

// AddClause installs a root-level constraint clause. It returns a
// *UsageError if the solver is no longer sane, is not at decision level 0,
// or lits references an undeclared variable (spec §7).
func (s *Solver) AddClause(lits []literal.Literal) error {
	if !s.sane {
		return newUsageError("add_clause called after the solver became unsatisfiable")
	}
	if lvl := s.decisionLevel(); lvl != 0 {
		return newUsageError("add_clause called at decision level %d, must be 0", lvl)
	}
	for _, l := range lits {
		if v := l.VarID(); v < 0 || v >= s.NumVariables() {
			return newUsageError("add_clause: literal %s references an undeclared variable", l)
		}
	}

	tmp := make([]literal.Literal, 0, len(lits)+len(s.conditionalLits))
	tmp = append(tmp, lits...)
	for _, c := range s.conditionalLits {
		tmp = append(tmp, c.Opposite())
	}

	c, ok := s.addConstraintClause(tmp)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.sane = false
	}
	return nil
}

// Simplify propagates any pending root-level facts and sweeps clauses
// already satisfied at decision level 0 out of the constraint and learnt
// pools. It must only be called at decision level 0.
func (s *Solver) Simplify() bool {
	if lvl := s.decisionLevel(); lvl != 0 {
		log.Panicf("sat: Simplify called at decision level %d, must be 0", lvl)
	}
	if !s.sane || s.propagate() != nil {
		s.sane = false
		return false
	}
	s.simplifyClauses(&s.learnts)
	s.simplifyClauses(&s.constraints)
	return true
}

func (s *Solver) simplifyClauses(clauses *[]*Clause) {
	cs := *clauses
	j := 0
	for i := range cs {
		if cs[i].simplify(s) {
			s.deleteClause(cs[i])
		} else {
			cs[j] = cs[i]
			j++
		}
	}
	*clauses = cs[:j]
}

// SetConflictBudget sets a cumulative (across Solve calls) conflict budget;
// a negative value means unlimited. It returns the previous budget.
func (s *Solver) SetConflictBudget(n int64) int64 {
	prev := s.conflictBudget
	s.conflictBudget = n
	return prev
}

// SetPropagationBudget sets a cumulative propagation budget; a negative
// value means unlimited. It returns the previous budget.
func (s *Solver) SetPropagationBudget(n int64) int64 {
	prev := s.propBudget
	s.propBudget = n
	return prev
}

// Stop requests that the current or next Solve call abort with Unknown. It
// is safe to call from any goroutine (spec §5).
func (s *Solver) Stop() {
	s.stopFlag.Store(true)
}

func (s *Solver) budgetExceeded() bool {
	if s.conflictBudget >= 0 && s.TotalConflicts >= s.conflictBudget {
		return true
	}
	if s.propBudget >= 0 && s.TotalPropagations >= s.propBudget {
		return true
	}
	if s.timeLimit > 0 && time.Since(s.startTime) >= s.timeLimit {
		return true
	}
	return false
}

// Model returns the last satisfying assignment found, one entry per
// declared variable. Entries for variables declared non-decision are left
// Unknown even if internally assigned, since they are implementation detail
// (e.g. Tseitin auxiliary wires) rather than part of the user's problem.
// It is only meaningful after Solve returns Sat.
func (s *Solver) Model() []lbool.LBool {
	return s.model
}

// ReadModel returns the last model's value for l, accounting for l's
// polarity.
func (s *Solver) ReadModel(l literal.Literal) lbool.LBool {
	v := s.model[l.VarID()]
	if v == lbool.Unknown || l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// ConflictLiterals returns the subset of the last Solve call's assumptions
// that participated in the Unsat core. It is only meaningful after Solve
// returns Unsat with nonzero assumptions.
func (s *Solver) ConflictLiterals() []literal.Literal {
	return s.conflictLits
}

// HasModel reports whether Solve has ever returned Sat for this solver.
func (s *Solver) HasModel() bool {
	return s.hasModel
}

func (s *Solver) saveModel() {
	s.model = make([]lbool.LBool, s.NumVariables())
	for v := range s.model {
		if s.heap.eligible[v] {
			s.model[v] = s.VarValue(v)
		}
	}
	s.hasModel = true
}

// Solve runs the CDCL search state machine (spec §4.6) under the given
// assumptions, for at most timeLimit (zero or negative means no limit). It
// always leaves the solver backtracked to decision level 0 on return.
func (s *Solver) Solve(assumptions []literal.Literal, timeLimit time.Duration) Status {
	if !s.sane {
		return Unsat
	}
	if !s.Simplify() {
		return Unsat
	}

	s.conflictLits = s.conflictLits[:0]
	s.startTime = time.Now()
	s.timeLimit = timeLimit

	ctrl := newRestartController(s.opts.Controller, len(s.constraints))

	if s.opts.Verbose {
		s.printSeparator()
		s.printSearchHeader()
		s.printSeparator()
	}

	status := Unknown
	for status == Unknown {
		s.budgetHit = false
		status = s.search(assumptions, ctrl)
		if status != Unknown {
			break
		}
		if s.budgetHit {
			break
		}
		ctrl.onRestart()
	}

	if s.opts.Verbose {
		s.printSearchStats()
		s.printSeparator()
	}

	s.cancelUntil(0)
	return status
}

// search runs a single restart round: propagate, analyze and backtrack on
// conflict, otherwise push the next assumption or decision, until Sat,
// Unsat, the round's conflict limit, or the solver's budget is reached.
func (s *Solver) search(assumptions []literal.Literal, ctrl restartController) Status {
	s.TotalRestarts++
	climit := ctrl.conflictLimit()
	var conflictCount int64

	for {
		if s.stopFlag.Load() || s.budgetExceeded() {
			s.budgetHit = true
			return Unknown
		}

		if confl := s.propagate(); confl != nil {
			conflictCount++
			s.TotalConflicts++
			ctrl.onConflict()

			if s.decisionLevel() == 0 {
				s.sane = false
				return Unsat
			}

			learnt, btlevel := s.analyze(confl)
			s.lbdAvg.Add(float64(s.lbd(learnt)))
			s.cancelUntil(btlevel)
			s.addLearntClause(learnt)

			s.decayClauseActivity()
			s.heap.decay()
			continue
		}

		if s.decisionLevel() == 0 {
			if !s.Simplify() {
				return Unsat
			}
		}

		if int64(len(s.learnts)) >= ctrl.learntLimit() {
			s.reduceDB()
		}

		var next literal.Literal
		pickedAssumption := false
		for s.decisionLevel() < len(assumptions) {
			p := assumptions[s.decisionLevel()]
			switch s.LitValue(p) {
			case lbool.True:
				// Already forced true: push an empty level marker so that
				// decisionLevel() still tracks assumption position.
				s.trailLim = append(s.trailLim, len(s.trail))
				continue
			case lbool.False:
				s.conflictLits = append(s.conflictLits[:0], p)
				s.conflictLits = append(s.conflictLits, s.analyzeFinal(p.Opposite())...)
				s.cancelUntil(0)
				return Unsat
			default:
				next = p
				pickedAssumption = true
			}
			break
		}

		if !pickedAssumption {
			d, ok := s.decide()
			if !ok {
				s.saveModel()
				s.cancelUntil(0)
				return Sat
			}
			next = d
		}

		if conflictCount > climit {
			s.cancelUntil(0)
			return Unknown
		}

		s.TotalDecisions++
		s.assume(next)
	}
}

func (s *Solver) printSeparator() {
	fmt.Println("c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	fmt.Println("c            time      conflicts       restarts        learnts        avg LBD")
}

func (s *Solver) printSearchStats() {
	fmt.Printf(
		"c %14.3fs %14d %14d %14d %14.2f\n",
		time.Since(s.startTime).Seconds(),
		s.TotalConflicts,
		s.TotalRestarts,
		len(s.learnts),
		s.lbdAvg.Val())
}

// lbd returns the learnt clause's literal block distance: the number of
// distinct decision levels among its literals (spec §4.4's clause-quality
// measure, tracked here as a running average for printSearchStats).
func (s *Solver) lbd(lits []literal.Literal) int {
	var seen uint64
	n := 0
	for _, l := range lits {
		lvl := s.level[l.VarID()]
		bit := uint64(1) << (uint(lvl) & 63)
		if seen&bit == 0 {
			seen |= bit
			n++
		}
	}
	return n
}
