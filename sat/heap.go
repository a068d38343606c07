package sat

import (
	"github.com/mna/ymsat/lbool"
	"github.com/rhartert/yagh"
)

// varHeap is the VSIDS max-heap over variables (spec §3 "Variable heap").
// It is backed by yagh's generic indexed heap, storing the negated score so
// that Pop (a min-heap) returns the variable of highest activity; ties are
// broken by yagh using insertion order. Per spec, the heap may transiently
// hold variables that have since been assigned — callers must skip those on
// pop rather than expect the heap to track assignment state itself.
type varHeap struct {
	order *yagh.IntMap[float64]

	scores     []float64 // in [0, 1e100)
	scoreInc   float64   // in (0, 1e100)
	scoreDecay float64

	phases     []lbool.LBool
	phaseCache bool
	eligible   []bool // decision-eligibility flag, spec §3 Variable
}

func newVarHeap(decay float64, phaseCache bool) *varHeap {
	return &varHeap{
		order:      yagh.New[float64](0),
		scoreInc:   1,
		scoreDecay: decay,
		phaseCache: phaseCache,
	}
}

// addVar registers a new variable with the heap. When decisionEligible is
// false the variable is tracked (for activity bumping and reinsertion) but
// never placed into the pop order.
func (h *varHeap) addVar(initScore float64, initPhase bool, decisionEligible bool) {
	varID := len(h.scores)
	h.scores = append(h.scores, initScore)
	h.phases = append(h.phases, lbool.Lift(initPhase))
	h.eligible = append(h.eligible, decisionEligible)

	h.order.GrowBy(1)
	if decisionEligible {
		h.order.Put(varID, -initScore)
	}
}

// reinsert adds variable v back to the candidate set after it becomes
// unassigned (e.g. on backtrack), recording val as its new cached phase.
func (h *varHeap) reinsert(v int, val lbool.LBool) {
	if h.phaseCache {
		h.phases[v] = val
	}
	if h.eligible[v] {
		h.order.Put(v, -h.scores[v])
	}
}

// bump increases v's activity score, rescaling all scores if the bump
// pushes any score past the 1e100 ceiling (spec §4.4 decay/rescale rule).
func (h *varHeap) bump(v int) {
	h.scores[v] += h.scoreInc
	if h.eligible[v] && h.order.Contains(v) {
		h.order.Put(v, -h.scores[v])
	}
	if h.scores[v] > 1e100 {
		h.rescale()
	}
}

// decay increases the score increment, giving newly-bumped variables
// relatively more weight than variables bumped long ago.
func (h *varHeap) decay() {
	h.scoreInc /= h.scoreDecay
	if h.scoreInc > 1e100 {
		h.rescale()
	}
}

func (h *varHeap) rescale() {
	h.scoreInc *= 1e-100
	for v, sc := range h.scores {
		h.scores[v] = sc * 1e-100
		if h.eligible[v] && h.order.Contains(v) {
			h.order.Put(v, -h.scores[v])
		}
	}
}

// pop removes and returns the variable of highest activity still in the
// heap. ok is false once the heap is empty; the caller is responsible for
// skipping variables that turn out to already be assigned.
func (h *varHeap) pop() (varID int, ok bool) {
	next, found := h.order.Pop()
	if !found {
		return 0, false
	}
	return next.Elem, true
}

func (h *varHeap) numVars() int {
	return len(h.scores)
}

func (h *varHeap) phaseOf(v int) lbool.LBool {
	return h.phases[v]
}
