package yeyo

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPackageJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "package.json", `{
  "name": "example-app",
  "dependencies": {
    "lib": "1.0.0"
  },
  "version": "1.0.0"
}
`)
	lines, err := NewRewriter(fs, nil).Scan("package.json", MustParseVersion("1.0.0"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 4, lines[0].Line)
	assert.False(t, lines[0].Main)
	assert.Equal(t, 6, lines[1].Line)
	assert.True(t, lines[1].Main)

	tmpl, ok := SuggestMatchTemplate(lines)
	require.True(t, ok)
	assert.Equal(t, `"version": "yeyo_version"`, tmpl)
}

func TestScanWholeVersionsOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "notes.txt", "11.0.0\n1.0.0-rc.1\n1.0.0.5\nnow at 1.0.0.\n")

	lines, err := NewRewriter(fs, nil).Scan("notes.txt", MustParseVersion("1.0.0"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Line)
	assert.Equal(t, "now at yeyo_version.", lines[0].Template)

	tmpl, ok := SuggestMatchTemplate(lines)
	require.True(t, ok)
	assert.Equal(t, "now at yeyo_version.", tmpl)
}

func TestScanPrerelease(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "version.go", "package main\n\nvar Version = \"0.0.0-dev.1\"\n")

	lines, err := NewRewriter(fs, nil).Scan("version.go", MustParseVersion("0.0.0-dev.1"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Main)
	assert.Equal(t, `var Version = "yeyo_version"`, lines[0].Template)
}

func TestScanVersionAfterLetter(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "CHANGELOG.md", "## v1.0.0\n")

	rw := NewRewriter(fs, nil)
	lines, err := rw.Scan("CHANGELOG.md", MustParseVersion("1.0.0"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "## v{{ yeyo_version }}", lines[0].Template)
	assert.Equal(t, "## v1.0.0", RenderVersion(lines[0].Template, MustParseVersion("1.0.0")))
}

func TestScanNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "a.txt", "hello\n")

	rw := NewRewriter(fs, nil)
	lines, err := rw.Scan("a.txt", MustParseVersion("1.0.0"))
	require.NoError(t, err)
	_, ok := SuggestMatchTemplate(lines)
	assert.False(t, ok)

	_, err = rw.Scan("missing", MustParseVersion("1.0.0"))
	assert.True(t, errors.Is(err, ErrIO))
}
