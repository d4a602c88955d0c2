package commitgraph

import "github.com/antgroup/commitgraph/internal/obslog"

// visitBudget bounds merge-base traversal against a corrupt graft cycle;
// see the second Open Question in SPEC_FULL.md §9.
const visitBudget = 1 << 20

// interestingMask is PARENT1|PARENT2|STALE, the bits spec.md's
// merge_bases tracks as reachability state. RESULT is a separate
// reserved bit (bookkeeping only) and is deliberately excluded.
const interestingMask = flagPARENT1 | flagPARENT2 | flagSTALE

// mergeBases implements spec.md §4.H's merge_bases primitive, grounded
// 1:1 on original_source/commit.c's merge_bases.
//
// This is where the §9 Open Question is resolved: the working list pops
// the first non-STALE element, not blindly the head, so a STALE head
// followed by a non-STALE element can never stall the loop — the latent
// bug the source's interesting()/list->item split invited.
func mergeBases(ctx *Context, a, b *Commit) ([]*Commit, error) {
	if a == b {
		return []*Commit{a}, nil
	}

	a.Flags |= flagPARENT1
	b.Flags |= flagPARENT2

	work := &CommitList{}
	work.InsertByDate(a)
	work.InsertByDate(b)

	var result []*Commit

	// The second §9 Open Question: eager parent parsing has no inherent
	// cycle guard, and a corrupt graft can introduce one. visits counts
	// loop iterations and stops the traversal once it exceeds
	// visitBudget, a bound a genuine DAG of realistic size never
	// approaches.
	visits := 0
	maxVisits := visitBudget

	for hasNonStale(work) {
		visits++
		if visits > maxVisits {
			return nil, BadGraft(0, "merge-base traversal exceeded %d visits, likely a graft cycle", maxVisits)
		}
		x, err := popFirstNonStale(work)
		if err != nil {
			return nil, err
		}
		if x == nil {
			break
		}

		// f tracks only PARENT1/PARENT2/STALE, never RESULT — RESULT is
		// bookkeeping for "already collected", not part of the
		// propagated reachability state.
		f := x.Flags & interestingMask
		isCandidate := f&(flagPARENT1|flagPARENT2) == (flagPARENT1 | flagPARENT2)

		if isCandidate {
			if x.Flags&flagRESULT == 0 {
				x.Flags |= flagRESULT
				result = append(result, x)
			}
			// STALE propagates to x's parents (excluding further
			// ancestors already dominated by this candidate) but is
			// never set on x itself — only a node reached as someone
			// else's parent ever gets its own STALE bit set.
			f |= flagSTALE
		}

		for _, p := range x.Parents {
			if !p.Handle.Parsed {
				if err := ctx.parseParent(p); err != nil {
					return nil, err
				}
			}
			if p.Flags&f == f {
				// already carries every bit of f: skip re-enqueue
				continue
			}
			p.Flags |= f
			work.InsertByDate(p)
		}
	}

	// Filter to retain only non-STALE members: a candidate may have
	// been marked STALE as a descendant of a later-found candidate.
	var out []*Commit
	for _, c := range result {
		if c.Flags&flagSTALE == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

// hasNonStale reports whether work contains at least one element whose
// STALE bit is clear.
func hasNonStale(work *CommitList) bool {
	for n := work.head; n != nil; n = n.next {
		if n.item.Flags&flagSTALE == 0 {
			return true
		}
	}
	return false
}

// popFirstNonStale removes and returns the first (highest-dated, since
// the list is date-ordered) element whose STALE bit is clear, preserving
// the date order of everything before it by re-inserting the skipped
// STALE elements — which is a no-op, since they stay where they are.
func popFirstNonStale(work *CommitList) (*Commit, error) {
	var prev *commitListItem
	for n := work.head; n != nil; n = n.next {
		if n.item.Flags&flagSTALE == 0 {
			if prev == nil {
				work.head = n.next
			} else {
				prev.next = n.next
			}
			return n.item, nil
		}
		prev = n
	}
	return nil, nil
}

// MergeBases is the exported form of spec.md's merge_bases.
func MergeBases(ctx *Context, a, b *Commit) ([]*Commit, error) {
	return mergeBases(ctx, a, b)
}

// GetMergeBases computes the independent merge bases of a and b,
// grounded 1:1 on get_merge_bases. When cleanup is true, the four
// reserved flag bits are cleared on every node the computation touched
// before returning (spec.md §4.H / flag-hygiene invariant).
func GetMergeBases(ctx *Context, a, b *Commit, cleanup bool) ([]*Commit, error) {
	tracker := obslog.NewTracker(ctx.Debug)
	result, err := mergeBases(ctx, a, b)
	if err != nil {
		return nil, err
	}
	tracker.StepNext("merge_bases(%s, %s)", a.Handle.ID, b.Handle.ID)
	if cleanup {
		ClearMarks(a, reservedMask)
		ClearMarks(b, reservedMask)
	}
	if len(result) <= 1 {
		return result, nil
	}

	// Reduce to independent merge bases: for every pair, recompute
	// merge_bases between them; any member of that pairwise result
	// that equals one of the pair is reachable from the other and gets
	// nulled out.
	surviving := make([]*Commit, len(result))
	copy(surviving, result)
	for i := 0; i < len(result); i++ {
		if surviving[i] == nil {
			continue
		}
		for j := i + 1; j < len(result); j++ {
			if surviving[j] == nil {
				continue
			}
			pair, err := mergeBases(ctx, result[i], result[j])
			if err != nil {
				return nil, err
			}
			ClearMarks(result[i], reservedMask)
			ClearMarks(result[j], reservedMask)
			for _, m := range pair {
				if m == result[i] {
					surviving[i] = nil
				}
				if m == result[j] {
					surviving[j] = nil
				}
			}
		}
	}

	var out []*Commit
	for _, c := range surviving {
		if c != nil {
			out = append(out, c)
		}
	}
	sortCommitsByDateDesc(out)
	tracker.StepNext("reduce independent bases (%d candidates)", len(result))
	return out, nil
}

// InMergeBases reports whether commit is an ancestor of reference
// (including commit == reference), grounded on in_merge_bases.
func InMergeBases(ctx *Context, commit, reference *Commit) (bool, error) {
	bases, err := GetMergeBases(ctx, commit, reference, true)
	if err != nil {
		return false, err
	}
	for _, b := range bases {
		if b == commit {
			return true, nil
		}
	}
	return false, nil
}

func sortCommitsByDateDesc(cs []*Commit) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j-1].Date < cs[j].Date; j-- {
			cs[j-1], cs[j] = cs[j], cs[j-1]
		}
	}
}
