package commitgraph

// Context groups the process-wide state spec.md §9's design note asks
// for explicitly — the object table, graft array, save_commit_buffer
// switch, and default user format — instead of package globals.
//
// The core is single-threaded (spec.md §5): GetMergeBases is not
// reentrant with itself on an overlapping graph fragment, because of the
// reserved flag bits, so two calls sharing a Context and touching
// overlapping commits must be serialized by the caller. Two Contexts
// operating on disjoint node sets may run concurrently.
type Context struct {
	Table  *Table
	Grafts *GraftIndex

	// SaveCommitBuffer must be set before parsing if the pretty printer
	// is to be used on the same commits afterward (spec.md §5).
	SaveCommitBuffer bool

	// UserFormat holds a default USERFORMAT template for callers. The
	// pretty printer does not read it; pretty.Print renders only
	// Options.Template.
	UserFormat string

	Shallow ShallowChecker

	// Debug enables the obslog.Tracker step timing GetMergeBases emits
	// around its traversal and pairwise-reduction phases.
	Debug bool
}

// NewContext returns a Context with a fresh Table and GraftIndex.
func NewContext(reader ObjectReader, resolver TagResolver) *Context {
	return &Context{
		Table:  NewTable(reader, resolver),
		Grafts: NewGraftIndex(),
	}
}

// parseParent lazily reads and parses p if it hasn't been parsed yet,
// used by the graph algorithms (merge-base, topological sort) when they
// walk into a handle the table only allocated but never filled in.
func (ctx *Context) parseParent(p *Commit) error {
	if p.Handle.Parsed {
		return nil
	}
	if ctx.Table.Reader == nil {
		return ReadError(p.Handle.ID, errNoReader)
	}
	kind, data, err := ctx.Table.Reader.ReadObject(p.Handle.ID)
	if err != nil {
		return ReadError(p.Handle.ID, err)
	}
	if kind != CommitObject {
		return WrongKind(p.Handle.ID, CommitObject, kind)
	}
	return p.Parse(ctx, data)
}
