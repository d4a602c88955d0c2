package plumbing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/commitgraph/modules/plumbing"
)

func TestNewHashRoundTrip(t *testing.T) {
	h := plumbing.NewHash("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", h.String())
	assert.False(t, h.IsZero())
}

func TestZeroHash(t *testing.T) {
	assert.True(t, plumbing.ZeroHash.IsZero())
	assert.Equal(t, plumbing.ZERO_OID, plumbing.ZeroHash.String())
}

func TestValidateHashHex(t *testing.T) {
	assert.True(t, plumbing.ValidateHashHex("da39a3ee5e6b4b0d3255bfef95601890afd80709"))
	assert.False(t, plumbing.ValidateHashHex("too-short"))
	assert.False(t, plumbing.ValidateHashHex("zz39a3ee5e6b4b0d3255bfef95601890afd80709"))
}

func TestNewHashEx(t *testing.T) {
	_, err := plumbing.NewHashEx("not-a-hash")
	assert.Error(t, err)

	h, err := plumbing.NewHashEx("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	require.NoError(t, err)
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", h.String())
}

func TestHashesSortOrdersByBytes(t *testing.T) {
	a := plumbing.NewHash("1000000000000000000000000000000000000000")
	b := plumbing.NewHash("2000000000000000000000000000000000000000")
	c := plumbing.NewHash("3000000000000000000000000000000000000000")
	hs := []plumbing.Hash{c, a, b}
	plumbing.HashesSort(hs)
	assert.Equal(t, []plumbing.Hash{a, b, c}, hs)
}

func TestHasherSum(t *testing.T) {
	h := plumbing.NewHasher()
	_, err := h.Write([]byte("blob 0\x00"))
	require.NoError(t, err)
	sum := h.Sum()
	assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", sum.String())
}

func TestHashJSONRoundTrip(t *testing.T) {
	h := plumbing.NewHash("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	b, err := json.Marshal(h)
	require.NoError(t, err)

	var got plumbing.Hash
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, h, got)
}

func TestHashShortenNeverBelowFour(t *testing.T) {
	assert.Equal(t, 4, plumbing.ZeroHash.Shorten())
}
