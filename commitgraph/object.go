package commitgraph

import "github.com/antgroup/commitgraph/modules/plumbing"

// Hash is the 20-byte content identifier used throughout the core. It is
// the teacher's plumbing.Hash, re-exported so callers never need to import
// the plumbing package directly for the common case.
type Hash = plumbing.Hash

// ZeroHash is the identifier with every byte zero.
var ZeroHash = plumbing.ZeroHash

// NewHash decodes a 40-character hex string into a Hash.
func NewHash(s string) Hash { return plumbing.NewHash(s) }

// ObjectType discriminates the kinds of object a Handle can name.
type ObjectType int

const (
	InvalidObject ObjectType = iota
	CommitObject
	TreeObject
	TagObject
	BlobObject
)

func (t ObjectType) String() string {
	switch t {
	case CommitObject:
		return "commit"
	case TreeObject:
		return "tree"
	case TagObject:
		return "tag"
	case BlobObject:
		return "blob"
	default:
		return "invalid"
	}
}

// Handle is a discriminated object entity: a kind, an identifier, a parsed
// flag, and (for commit handles) the Commit payload. Handles are canonical
// per identifier — Table guarantees at most one Handle exists per id.
//
// Tree, tag, and blob payloads are out of scope (named collaborators only,
// per spec.md §1); a Handle of one of those kinds carries no payload
// beyond its id and kind, which is all the commit-graph core ever needs
// from them (tag dereferencing, parent "tree" field opacity).
type Handle struct {
	ID     Hash
	Kind   ObjectType
	Parsed bool

	// Commit is non-nil only when Kind == CommitObject.
	Commit *Commit
}
