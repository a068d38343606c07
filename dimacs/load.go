package dimacs

import (
	"fmt"
	"io"

	"github.com/mna/ymsat/literal"
	"github.com/mna/ymsat/sat"
)

// LoadSolver reads a DIMACS CNF stream and declares its variables and
// clauses onto s, returning the read instance's diagnostics. It mirrors the
// teacher's DIMACS loading, generalized to report diagnostics instead of
// returning at the first error, and to map declared variable count 1:1 onto
// s.NewVariable calls before adding any clause (so variable IDs in s line up
// with DIMACS 1-based variable numbers minus one). If the stream has any
// SeverityError diagnostic, nothing is declared on s and an error is
// returned together with the diagnostics.
func LoadSolver(r io.Reader, s *sat.Solver) ([]Diagnostic, error) {
	inst, diags, ok := ReadAll(r)
	if !ok {
		return diags, fmt.Errorf("dimacs: instance has errors")
	}

	for i := 0; i < inst.NumVars; i++ {
		s.NewVariable(true)
	}

	lits := make([]literal.Literal, 0, 8)
	for _, clause := range inst.Clauses {
		lits = lits[:0]
		for _, l := range clause {
			v := int(absInt(l)) - 1
			if v >= s.NumVariables() {
				return diags, fmt.Errorf("dimacs: literal %d references undeclared variable", l)
			}
			if l < 0 {
				lits = append(lits, literal.Negative(v))
			} else {
				lits = append(lits, literal.Positive(v))
			}
		}
		if err := s.AddClause(append([]literal.Literal(nil), lits...)); err != nil {
			return diags, err
		}
	}

	return diags, nil
}
