package commitgraph

import (
	"errors"
	"sync"

	"github.com/antgroup/commitgraph/internal/obslog"
)

// Table interns object Handles by identifier: at most one Handle exists
// per id (spec.md invariant 3), allocated on first lookup and never
// freed (spec.md §3 Lifecycle). Grounded on the teacher's
// modules/git/gitobj.Database lookup methods and zeta/object.Decode's
// "make on first sight" allocation, backed here by the caller-supplied
// ObjectReader/TagResolver collaborators instead of a disk storer.
type Table struct {
	mu      sync.Mutex
	handles map[Hash]*Handle

	Reader   ObjectReader
	Resolver TagResolver
}

// NewTable returns an empty Table backed by reader and resolver. Either
// may be nil if the caller only intends to Create handles directly
// (e.g. in tests).
func NewTable(reader ObjectReader, resolver TagResolver) *Table {
	return &Table{
		handles:  make(map[Hash]*Handle),
		Reader:   reader,
		Resolver: resolver,
	}
}

// Lookup returns the canonical handle for id, allocating an unparsed
// handle of kind hint if absent. If a prior lookup already registered id
// under a different kind, that kind is kept and returned — the caller is
// expected to check Handle.Kind itself (spec.md §4.B).
func (t *Table) Lookup(id Hash, hint ObjectType) *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.handles[id]; ok {
		return h
	}
	h := &Handle{ID: id, Kind: hint}
	t.handles[id] = h
	return h
}

// Create registers a handle of a known kind together with its payload
// node, used when both are already known at lookup time (spec.md §4.B:
// "used only when the kind is known at lookup time, e.g., during parse").
// If id was already registered, the existing handle is returned and node
// is discarded — Create never overwrites a canonical handle's payload,
// matching Lookup's "first allocation wins" contract. node is attached
// only when kind is CommitObject; it may be nil, which behaves exactly
// like Lookup(id, kind).
func (t *Table) Create(id Hash, kind ObjectType, node *Commit) *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.handles[id]
	if !ok {
		h = &Handle{ID: id, Kind: kind}
		t.handles[id] = h
	}
	if h.Kind == CommitObject && h.Commit == nil && node != nil {
		node.Handle = h
		h.Commit = node
	}
	return h
}

// LookupCommitReference dereferences id, following tag objects
// transitively via the TagResolver, then requires the final kind to be
// commit. If quiet is false, a WrongKind failure is logged via obslog
// before being returned; if quiet is true, the caller gets the error with
// nothing logged — matching check_commit's "if (!quiet) error(...)" in
// original_source/commit.c.
func (t *Table) LookupCommitReference(id Hash, quiet bool) (*Commit, error) {
	cur := id
	kind := CommitObject
	for i := 0; i < maxTagChain; i++ {
		h := t.Lookup(cur, kind)
		if h.Kind == TagObject {
			if t.Resolver == nil {
				return nil, ReadError(cur, errNoTagResolver)
			}
			target, targetKind, err := t.Resolver.ResolveTag(cur)
			if err != nil {
				return nil, ReadError(cur, err)
			}
			cur = target
			kind = targetKind
			continue
		}
		if h.Kind != CommitObject {
			err := WrongKind(cur, CommitObject, h.Kind)
			if !quiet {
				_ = obslog.Errorf("%v", err)
			}
			return nil, err
		}
		if h.Commit == nil {
			h.Commit = &Commit{Handle: h}
		}
		return h.Commit, nil
	}
	return nil, BadCommit(id, "tag chain too long")
}

// maxTagChain bounds the transitive tag dereference in
// LookupCommitReference against a corrupt self-referential tag chain.
const maxTagChain = 32

var (
	errNoTagResolver = errors.New("commitgraph: tag object encountered without a TagResolver")
	errNoReader      = errors.New("commitgraph: object needed but no ObjectReader configured")
)
