package dimacs

import (
	"fmt"
	"os"

	rhdimacs "github.com/rhartert/dimacs"
)

// ReadModels parses a DIMACS-shaped file whose "clause" lines are in fact
// reference models (one line per model, positive/negative integers giving
// each variable's expected truth value), used as a test oracle to check
// this module's own solver output against an independently parsed file.
// It deliberately goes through github.com/rhartert/dimacs instead of this
// package's own Reader, so that a bug shared between the writer and the
// reader under test would not also hide a bug in the oracle.
func ReadModels(filename string) ([][]bool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacs: reading model file %q: %w", filename, err)
	}
	defer f.Close()

	b := &modelBuilder{}
	if err := rhdimacs.ReadBuilder(f, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("dimacs: model files should not contain a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
