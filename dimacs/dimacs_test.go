package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mna/ymsat/sat"
)

func TestReadAllBasic(t *testing.T) {
	src := `c a comment
p cnf 3 2
1 -2 0
c another comment
2 3 0
`
	inst, diags, ok := ReadAll(strings.NewReader(src))
	if !ok {
		t.Fatalf("ReadAll: ok=false, diags=%v", diags)
	}
	if len(diags) != 0 {
		t.Errorf("diags = %v, want none", diags)
	}
	want := Instance{
		NumVars:    3,
		NumClauses: 2,
		Clauses:    [][]int64{{1, -2}, {2, 3}},
	}
	if diff := cmp.Diff(want, inst); diff != "" {
		t.Errorf("ReadAll mismatch (-want +got):\n%s", diff)
	}
}

func TestReadAllDuplicateHeader(t *testing.T) {
	src := "p cnf 1 1\np cnf 2 2\n1 0\n"
	_, diags, ok := ReadAll(strings.NewReader(src))
	if ok {
		t.Fatal("ok = true, want false (duplicated header is a hard error)")
	}
	if !hasMessage(diags, SeverityError, "duplicated") {
		t.Errorf("diags = %v, want a duplicated-header error", diags)
	}
}

func TestReadAllMissingHeader(t *testing.T) {
	_, diags, ok := ReadAll(strings.NewReader("1 2 0\n"))
	if ok {
		t.Fatal("ok = true, want false")
	}
	if !hasMessage(diags, SeverityError, "before problem line") {
		t.Errorf("diags = %v, want a missing-header error", diags)
	}
}

func TestReadAllSyntaxError(t *testing.T) {
	_, diags, ok := ReadAll(strings.NewReader("p cnf 2 1\n1 xyz 0\n"))
	if ok {
		t.Fatal("ok = true, want false")
	}
	if !hasMessage(diags, SeverityError, "not an integer") {
		t.Errorf("diags = %v, want a syntax error", diags)
	}
}

func TestReadAllCountMismatchWarning(t *testing.T) {
	src := "p cnf 2 5\n1 2 0\n"
	inst, diags, ok := ReadAll(strings.NewReader(src))
	if !ok {
		t.Fatalf("ok = false, diags=%v", diags)
	}
	if len(inst.Clauses) != 1 {
		t.Fatalf("Clauses = %v, want 1 clause", inst.Clauses)
	}
	if !hasMessage(diags, SeverityWarning, "declared 5 clauses") {
		t.Errorf("diags = %v, want a clause-count warning", diags)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	inst := Instance{
		NumVars:    3,
		NumClauses: 2,
		Clauses:    [][]int64{{1, -2, 3}, {-1, 2}},
	}
	var sb strings.Builder
	if err := Write(&sb, inst); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, diags, ok := ReadAll(strings.NewReader(sb.String()))
	if !ok {
		t.Fatalf("ReadAll(Write(inst)): ok=false, diags=%v", diags)
	}
	if diff := cmp.Diff(inst, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSolver(t *testing.T) {
	s, err := sat.NewSolver(sat.DefaultConfig())
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}

	src := "p cnf 2 2\n1 2 0\n-1 -2 0\n"
	diags, err := LoadSolver(strings.NewReader(src), s)
	if err != nil {
		t.Fatalf("LoadSolver: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diags = %v, want none", diags)
	}
	if s.NumVariables() != 2 {
		t.Fatalf("NumVariables() = %d, want 2", s.NumVariables())
	}
	if got := s.Solve(nil, 0); got != sat.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
}

func hasMessage(diags []Diagnostic, sev Severity, substr string) bool {
	for _, d := range diags {
		if d.Severity == sev && strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}
