package commitgraph_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/antgroup/commitgraph/commitgraph"
)

func TestGraftIndexRegisterAndLookup(t *testing.T) {
	idx := cg.NewGraftIndex()
	a := cg.NewHash(hex(30))
	b := cg.NewHash(hex(31))
	c := cg.NewHash(hex(32))

	idx.Register(&cg.Graft{ID: b, Parents: []cg.Hash{c}}, cg.GraftReplace)
	idx.Register(&cg.Graft{ID: a, Parents: []cg.Hash{b}}, cg.GraftReplace)
	idx.Register(&cg.Graft{ID: c, Shallow: true}, cg.GraftReplace)

	require.Equal(t, 3, idx.Len())

	g, ok := idx.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, []cg.Hash{b}, g.Parents)

	g, ok = idx.Lookup(c)
	require.True(t, ok)
	assert.True(t, g.Shallow)
}

func TestGraftIndexDuplicatePolicy(t *testing.T) {
	idx := cg.NewGraftIndex()
	id := cg.NewHash(hex(33))
	p1 := cg.NewHash(hex(34))
	p2 := cg.NewHash(hex(35))

	idx.Register(&cg.Graft{ID: id, Parents: []cg.Hash{p1}}, cg.GraftReplace)
	stored := idx.Register(&cg.Graft{ID: id, Parents: []cg.Hash{p2}}, cg.GraftIgnore)
	assert.False(t, stored)
	g, _ := idx.Lookup(id)
	assert.Equal(t, []cg.Hash{p1}, g.Parents)

	stored = idx.Register(&cg.Graft{ID: id, Parents: []cg.Hash{p2}}, cg.GraftReplace)
	assert.True(t, stored)
	g, _ = idx.Lookup(id)
	assert.Equal(t, []cg.Hash{p2}, g.Parents)
}

func TestReadGraftFile(t *testing.T) {
	idx := cg.NewGraftIndex()
	a := hex(36)
	b := hex(37)
	data := []byte("# comment\n\n" + a + " " + b + "\n")

	errs := idx.ReadGraftFile(data, cg.GraftReplace)
	assert.Empty(t, errs)

	g, ok := idx.Lookup(cg.NewHash(a))
	require.True(t, ok)
	assert.Equal(t, []cg.Hash{cg.NewHash(b)}, g.Parents)
}

func TestReadGraftFileBadRecordLength(t *testing.T) {
	idx := cg.NewGraftIndex()
	data := []byte("not-a-valid-length-record\n")
	errs := idx.ReadGraftFile(data, cg.GraftReplace)
	require.Len(t, errs, 1)
	assert.True(t, cg.IsBadGraft(errs[0]))
	assert.Equal(t, 0, idx.Len())
}

func TestWriteShallowCommitsBothFormats(t *testing.T) {
	idx := cg.NewGraftIndex()
	id := cg.NewHash(hex(38))
	idx.Register(&cg.Graft{ID: id, Shallow: true}, cg.GraftReplace)

	var plain bytes.Buffer
	require.NoError(t, idx.WriteShallowCommits(bufio.NewWriter(&plain), false))
	assert.Equal(t, id.String()+"\n", plain.String())

	var packet bytes.Buffer
	require.NoError(t, idx.WriteShallowCommits(bufio.NewWriter(&packet), true))
	assert.Equal(t, "shallow "+id.String()+"\n", packet.String())
}

func TestWriteShallowCommitsToPooledWriter(t *testing.T) {
	idx := cg.NewGraftIndex()
	id := cg.NewHash(hex(39))
	idx.Register(&cg.Graft{ID: id, Shallow: true}, cg.GraftReplace)

	var out bytes.Buffer
	require.NoError(t, idx.WriteShallowCommitsTo(&out, false))
	assert.Equal(t, id.String()+"\n", out.String())
}

func TestReadGraftFileFromPooledReader(t *testing.T) {
	a := cg.NewHash(hex(40))
	b := cg.NewHash(hex(41))
	line := a.String() + " " + b.String() + "\n"

	idx := cg.NewGraftIndex()
	errs, err := idx.ReadGraftFileFrom(strings.NewReader(line), cg.GraftReplace)
	require.NoError(t, err)
	assert.Empty(t, errs)

	g, ok := idx.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, []cg.Hash{b}, g.Parents)
}
