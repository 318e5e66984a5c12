package yeyo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdd(t *testing.T) {
	r := &Registry{}
	require.NoError(t, r.Add("VERSION", ""))
	require.NoError(t, r.Add("pkg/__init__.py", `__version__ = "yeyo_version"`))

	assert.Equal(t, []TrackedFile{
		{Path: "VERSION", MatchTemplate: DefaultMatchTemplate},
		{Path: "pkg/__init__.py", MatchTemplate: `__version__ = "yeyo_version"`},
	}, r.List())
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Contains("./VERSION"))
}

func TestRegistryAddDuplicate(t *testing.T) {
	r := &Registry{}
	require.NoError(t, r.Add("a/b.txt", ""))

	err := r.Add("a/./b.txt", "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateFile))
	assert.Equal(t, 1, r.Len())

	err = r.Add("", "")
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestRegistryRemove(t *testing.T) {
	r, err := NewRegistry(
		TrackedFile{Path: "a"},
		TrackedFile{Path: "b"},
		TrackedFile{Path: "c"},
	)
	require.NoError(t, err)

	list := r.List()
	require.NoError(t, r.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, r.Paths())
	// Earlier snapshots are unaffected.
	assert.Equal(t, "b", list[1].Path)

	err = r.Remove("b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "b: not tracked")
}

func TestRegistryOrderSurvivesAddRemove(t *testing.T) {
	r := &Registry{}
	for _, p := range []string{"z", "a", "m"} {
		require.NoError(t, r.Add(p, ""))
	}
	require.NoError(t, r.Remove("z"))
	require.NoError(t, r.Add("z", ""))
	assert.Equal(t, []string{"a", "m", "z"}, r.Paths())
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(TrackedFile{Path: "a"}, TrackedFile{Path: "a"})
	assert.True(t, errors.Is(err, ErrDuplicateFile))
}

func TestRegistryClone(t *testing.T) {
	r, err := NewRegistry(TrackedFile{Path: "a"})
	require.NoError(t, err)
	c := r.Clone()
	require.NoError(t, c.Add("b", ""))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, c.Len())
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	assert.False(t, r.Contains("VERSION"))
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Paths())
	assert.True(t, errors.Is(r.Remove("VERSION"), ErrNotFound))
	assert.True(t, errors.Is(r.Add("VERSION", ""), ErrInvalidState))

	cfg := &Config{}
	assert.True(t, errors.Is(cfg.Files.Add("VERSION", ""), ErrInvalidState))
	assert.Equal(t, 0, cfg.Clone().Files.Len())
}
