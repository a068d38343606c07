package sat

import "github.com/mna/ymsat/literal"

// watcherKind tags a watcher.Clause clauses need their watched literals
// reloaded on every visit; Implied watchers are the binary-clause fast path
// and never touch an allocated clause record at all.
type watcherKind uint8

const (
	watchClause watcherKind = iota
	watchImplied
)

// watcher is the tagged union `Watcher = Implied(Literal) | Clause(Handle)`:
// an entry in a literal's watch list. Binary clauses never allocate a
// *Clause; they are represented purely as an Implied watcher carrying the
// clause's other literal.
type watcher struct {
	kind watcherKind
	lit  literal.Literal // valid when kind == watchImplied
	cla  *Clause         // valid when kind == watchClause
}

func impliedWatcher(lit literal.Literal) watcher {
	return watcher{kind: watchImplied, lit: lit}
}

func clauseWatcher(c *Clause) watcher {
	return watcher{kind: watchClause, cla: c}
}
