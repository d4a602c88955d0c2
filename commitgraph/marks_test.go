package commitgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cg "github.com/antgroup/commitgraph/commitgraph"
)

func TestClearMarksStopsWhenAlreadyClear(t *testing.T) {
	const mask uint32 = 0x1

	grandparent := makeDatedCommit(1)
	parent := makeDatedCommit(2)
	child := makeDatedCommit(3)
	child.Parents = []*cg.Commit{parent}
	parent.Parents = []*cg.Commit{grandparent}

	child.Flags |= mask
	parent.Flags |= mask
	// grandparent left unmarked: ClearMarks must not recurse into it,
	// since its mask bit is already clear.
	visited := grandparent.Flags

	cg.ClearMarks(child, mask)

	assert.Zero(t, child.Flags&mask)
	assert.Zero(t, parent.Flags&mask)
	assert.Equal(t, visited, grandparent.Flags)
}

func TestClearMarksNoOpOnUnmarkedRoot(t *testing.T) {
	const mask uint32 = 0x4
	c := makeDatedCommit(1)
	cg.ClearMarks(c, mask) // must not panic on nil Parents
	assert.Zero(t, c.Flags&mask)
}

// TestClearMarksRecursesEvenWhenRootItselfIsClear guards against a
// regression where an early guard on root's own flags short-circuited
// the whole call, skipping parents that still carry the mask — the root
// itself carrying no bits of mask must never prevent descending into
// its parents.
func TestClearMarksRecursesEvenWhenRootItselfIsClear(t *testing.T) {
	const mask uint32 = 0x8

	parent := makeDatedCommit(1)
	root := makeDatedCommit(2)
	root.Parents = []*cg.Commit{parent}

	parent.Flags |= mask
	// root itself never had the bit set.

	cg.ClearMarks(root, mask)

	assert.Zero(t, root.Flags&mask)
	assert.Zero(t, parent.Flags&mask)
}
