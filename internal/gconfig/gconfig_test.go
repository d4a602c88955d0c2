package gconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/commitgraph/internal/gconfig"
)

func TestDefault(t *testing.T) {
	s := gconfig.Default()
	assert.Equal(t, "utf-8", s.OutputEncoding)
	assert.Equal(t, gconfig.DateStyleNormal, s.DateStyle)
	assert.Equal(t, 7, s.AbbrevLength)
	assert.False(t, s.SaveCommitBuffer)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commitgraph.toml")
	want := gconfig.Settings{
		OutputEncoding:   "iso-8859-1",
		DateStyle:        gconfig.DateStyleRelative,
		AbbrevLength:     10,
		SaveCommitBuffer: true,
	}
	require.NoError(t, gconfig.Save(path, want))

	got, err := gconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte("abbrev_length = 12\n"), 0o644))

	got, err := gconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, got.AbbrevLength)
	assert.Equal(t, "utf-8", got.OutputEncoding)
	assert.Equal(t, gconfig.DateStyleNormal, got.DateStyle)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := gconfig.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
