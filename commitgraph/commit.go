package commitgraph

import (
	"bytes"
	"strings"
)

// ExtraHeader is an arbitrary commit header beyond tree/parent/author/
// committer, preserved verbatim (including continuation lines), grounded
// on the teacher's modules/git ExtraHeader{K,V}.
type ExtraHeader struct {
	K string
	V string
}

// Reserved flag bits, upper 16 of Commit.Flags, owned by the merge-base
// engine (spec.md §3). Callers may use any bit in the lower 16.
const (
	flagPARENT1 uint32 = 1 << 16
	flagPARENT2 uint32 = 1 << 17
	flagSTALE   uint32 = 1 << 18
	flagRESULT  uint32 = 1 << 19

	reservedMask = flagPARENT1 | flagPARENT2 | flagSTALE | flagRESULT
)

// Commit is a commit node: an object handle extended with tree, parents,
// date, flags, and the optional retained raw buffer (spec.md §3).
type Commit struct {
	Handle *Handle

	Tree         Hash
	Parents      []*Commit
	Author       Person
	Committer    Person
	Encoding     string // declared "encoding" header, "" if absent (meaning utf-8)
	ExtraHeaders []ExtraHeader
	Message      []byte

	Date  int64  // committer epoch seconds, 0 if unparsable
	Flags uint32 // caller + algorithm-reserved bits, see spec.md §3

	RawBuffer []byte // retained only when Context.SaveCommitBuffer is set

	// Aux is the topological sorter's per-call auxiliary slot
	// (spec.md §4.G). Never read by any other component.
	Aux any
}

// Less orders commits by committer date, descending. CommitList and the
// topological sorter's heap compare Date directly and do not call it.
func (c *Commit) Less(other *Commit) bool {
	return c.Date > other.Date
}

// Parse fills in c from data, the commit's raw byte representation,
// following the grammar in spec.md §4.D (grounded 1:1 on
// original_source/commit.c's parse_commit_buffer and the teacher's
// zeta/object/commit.go Decode: split into lines, walk the header block,
// fold continuation lines into the preceding header's value).
//
// Parse is re-entrant and idempotent (invariant 2): a second call on an
// already-parsed handle returns nil without touching c again.
func (c *Commit) Parse(ctx *Context, data []byte) error {
	if c.Handle.Parsed {
		return nil
	}

	lines := splitLines(data)
	i := 0

	if i >= len(lines) {
		return BadCommit(c.Handle.ID, "empty buffer")
	}
	treeHex, ok := strings.CutPrefix(lines[i], "tree ")
	if !ok {
		return BadCommit(c.Handle.ID, "expected 'tree ' header, got %q", lines[i])
	}
	tree, err := NewHashEx(treeHex)
	if err != nil {
		return BadCommit(c.Handle.ID, "bad tree hex: %v", err)
	}
	c.Tree = tree
	i++

	var rawParents []Hash
	for i < len(lines) {
		parentHex, ok := strings.CutPrefix(lines[i], "parent ")
		if !ok {
			break
		}
		p, err := NewHashEx(parentHex)
		if err != nil {
			return BadCommit(c.Handle.ID, "bad parent hex: %v", err)
		}
		rawParents = append(rawParents, p)
		i++
	}

	if i >= len(lines) {
		return BadCommit(c.Handle.ID, "missing author header")
	}
	authorBody, ok := strings.CutPrefix(lines[i], "author ")
	if !ok {
		return BadCommit(c.Handle.ID, "expected 'author ' header, got %q", lines[i])
	}
	c.Author = parsePersonLine(authorBody)
	i++

	if i >= len(lines) {
		return BadCommit(c.Handle.ID, "missing committer header")
	}
	committerBody, ok := strings.CutPrefix(lines[i], "committer ")
	if !ok {
		return BadCommit(c.Handle.ID, "expected 'committer ' header, got %q", lines[i])
	}
	c.Committer = parsePersonLine(committerBody)
	c.Date = c.Committer.When
	i++

	// Arbitrary headers up to the blank line separating header from
	// message. A leading space on the next line folds it into the
	// current header's value as a continuation, matching the teacher's
	// Decode.
	for i < len(lines) && lines[i] != "" {
		key, value, ok := cutHeader(lines[i])
		if !ok {
			return BadCommit(c.Handle.ID, "malformed header line %q", lines[i])
		}
		i++
		for i < len(lines) && strings.HasPrefix(lines[i], " ") {
			value += "\n" + strings.TrimPrefix(lines[i], " ")
			i++
		}
		if key == "encoding" {
			c.Encoding = value
			continue
		}
		c.ExtraHeaders = append(c.ExtraHeaders, ExtraHeader{K: key, V: value})
	}
	if i >= len(lines) {
		return BadCommit(c.Handle.ID, "missing header/message separator")
	}
	i++ // skip the blank line

	c.Message = []byte(strings.Join(lines[i:], "\n"))

	// Graft exclusivity (spec.md invariant 3): if a graft matches this
	// commit's id, its parent list wins outright; raw headers are
	// discarded entirely (including for a shallow marker's empty list).
	parentIDs := rawParents
	if g, ok := ctx.Grafts.Lookup(c.Handle.ID); ok {
		parentIDs = g.Parents
	}

	// parsed = true is set before parent lookup so parent-of-parent
	// recursion through the table is safe (spec.md §4.D rule 5).
	c.Handle.Parsed = true

	c.Parents = make([]*Commit, 0, len(parentIDs))
	for _, pid := range parentIDs {
		ph := ctx.Table.Create(pid, CommitObject, &Commit{})
		c.Parents = append(c.Parents, ph.Commit)
	}

	if ctx.SaveCommitBuffer {
		c.RawBuffer = data
	}

	return nil
}

// Subject is the first line of Message.
func (c *Commit) Subject() string {
	if i := bytes.IndexByte(c.Message, '\n'); i >= 0 {
		return string(c.Message[:i])
	}
	return string(c.Message)
}

// ExtractGPGSignature returns the value of the "gpgsig" extra header, if
// present. Restored from the teacher's modules/git Commit.Signature() —
// verifying the signature is out of scope, but a complete commit-graph
// core should not silently drop it (see SPEC_FULL.md's supplemented
// section).
func (c *Commit) ExtractGPGSignature() (string, bool) {
	for _, h := range c.ExtraHeaders {
		if h.K == "gpgsig" {
			return h.V, true
		}
	}
	return "", false
}

// splitLines splits data on "\n" without a trailing empty element for a
// final newline, the way the teacher's Decode walks a commit buffer.
func splitLines(data []byte) []string {
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// cutHeader splits "key value" into its two parts on the first space.
func cutHeader(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return line, "", true
	}
	return line[:idx], line[idx+1:], true
}
