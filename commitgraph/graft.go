package commitgraph

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/antgroup/commitgraph/internal/obslog"
	"github.com/antgroup/commitgraph/modules/streamio"
)

// GraftPolicy selects what register does when a graft for an id already
// exists.
type GraftPolicy int

const (
	// GraftIgnore keeps the existing record, discarding the new one.
	GraftIgnore GraftPolicy = iota
	// GraftReplace overwrites the existing record with the new one.
	GraftReplace
)

// Graft is an id-keyed parent substitution record (spec.md §3). A nil
// Parents slice (len 0) with Shallow true marks the node as an artificial
// graph root.
type Graft struct {
	ID      Hash
	Parents []Hash
	Shallow bool // nr_parent == -1 in the C source's encoding
}

// GraftIndex is the sorted, binary-searched array of Graft records,
// grounded 1:1 on original_source/commit.c's commit_graft_pos /
// register_commit_graft, translated with sort.Search instead of manual
// memmove.
type GraftIndex struct {
	records []*Graft
}

// NewGraftIndex returns an empty GraftIndex.
func NewGraftIndex() *GraftIndex {
	return &GraftIndex{}
}

// pos returns the index of id in g.records, or the insertion point and
// false if absent — the Go equivalent of commit_graft_pos's binary search
// returning -1-insertion_point on miss.
func (g *GraftIndex) pos(id Hash) (int, bool) {
	i := sort.Search(len(g.records), func(i int) bool {
		return bytes.Compare(g.records[i].ID[:], id[:]) >= 0
	})
	if i < len(g.records) && g.records[i].ID == id {
		return i, true
	}
	return i, false
}

// Lookup returns the graft registered for id, if any.
func (g *GraftIndex) Lookup(id Hash) (*Graft, bool) {
	i, ok := g.pos(id)
	if !ok {
		return nil, false
	}
	return g.records[i], true
}

// Register inserts graft into the sorted array, honoring policy on a
// duplicate id. It reports whether the record was stored (false means an
// existing record was kept under GraftIgnore).
func (g *GraftIndex) Register(graft *Graft, policy GraftPolicy) bool {
	i, exists := g.pos(graft.ID)
	if exists {
		if policy == GraftIgnore {
			return false
		}
		g.records[i] = graft
		return true
	}
	g.records = append(g.records, nil)
	copy(g.records[i+1:], g.records[i:])
	g.records[i] = graft
	return true
}

// Unregister removes the graft for id, if present. Used to drop shallow
// markers once a boundary is no longer shallow.
func (g *GraftIndex) Unregister(id Hash) bool {
	i, ok := g.pos(id)
	if !ok {
		return false
	}
	g.records = append(g.records[:i], g.records[i+1:]...)
	return true
}

// Len reports the number of registered grafts.
func (g *GraftIndex) Len() int { return len(g.records) }

// ReadGraftFile parses the graft file grammar from spec.md §6: one record
// per line, "<commit-hex> [<parent-hex> …]", '#'-prefixed or empty lines
// are comments, a record with zero parents is a shallow marker. The
// record length must satisfy (len+1) mod 41 == 0; a violation is a
// BadGraft on that line only (the file continues), matching
// read_graft_line/read_graft_file in original_source/commit.c.
func (g *GraftIndex) ReadGraftFile(data []byte, policy GraftPolicy) []error {
	var errs []error
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		if (len(line)+1)%41 != 0 {
			errs = append(errs, BadGraft(lineNo, "invalid record length %d", len(line)))
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			errs = append(errs, BadGraft(lineNo, "empty record"))
			continue
		}
		id, err := NewHashEx(fields[0])
		if err != nil {
			errs = append(errs, BadGraft(lineNo, "bad commit hex: %v", err))
			continue
		}
		graft := &Graft{ID: id}
		if len(fields) == 1 {
			graft.Shallow = true
		} else {
			graft.Parents = make([]Hash, 0, len(fields)-1)
			bad := false
			for _, tok := range fields[1:] {
				p, err := NewHashEx(tok)
				if err != nil {
					errs = append(errs, BadGraft(lineNo, "bad parent hex: %v", err))
					bad = true
					break
				}
				graft.Parents = append(graft.Parents, p)
			}
			if bad {
				continue
			}
		}
		if !g.Register(graft, policy) {
			_ = obslog.Errorf("graft for %s ignored (duplicate, line %d)", id, lineNo)
		}
	}
	return errs
}

// WriteShallowCommits writes every shallow graft's hex id to w, in the
// packet-line wire format ("shallow <hex>\n" per entry) if packetLine is
// true, or the plain format (40 hex bytes + "\n", repeated) otherwise —
// spec.md §6 Shallow wire format.
func (g *GraftIndex) WriteShallowCommits(w *bufio.Writer, packetLine bool) error {
	for _, rec := range g.records {
		if !rec.Shallow {
			continue
		}
		var err error
		if packetLine {
			_, err = fmt.Fprintf(w, "shallow %s\n", rec.ID)
		} else {
			_, err = fmt.Fprintf(w, "%s\n", rec.ID)
		}
		if err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadGraftFileFrom is ReadGraftFile's counterpart for a streamed source
// (a negotiation connection rather than an in-memory buffer): it borrows a
// pooled *bufio.Reader from modules/streamio so repeated calls on a
// connection don't allocate a fresh read buffer each time.
func (g *GraftIndex) ReadGraftFileFrom(r io.Reader, policy GraftPolicy) ([]error, error) {
	br := streamio.GetBufioReader(r)
	defer streamio.PutBufioReader(br)
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	return g.ReadGraftFile(data, policy), nil
}

// WriteShallowCommitsTo is the caller-facing equivalent of
// WriteShallowCommits for an arbitrary io.Writer (a socket, a pack
// negotiation stream): it borrows a pooled *bufio.Writer from
// modules/streamio instead of allocating one per call, matching the
// teacher's transport-layer convention of pooling bufio buffers on the
// packet-line hot path.
func (g *GraftIndex) WriteShallowCommitsTo(w io.Writer, packetLine bool) error {
	bw := streamio.GetBufferWriter(w)
	defer streamio.PutBufferWriter(bw)
	return g.WriteShallowCommits(bw, packetLine)
}
