package yeyo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	v := MustParseVersion("1.0.0")
	tests := []struct {
		name     string
		template string
		expected string
	}{
		{"default tag", DefaultTagTemplate, "1.0.0"},
		{"prefixed", "v{{ yeyo_version }}", "v1.0.0"},
		{"no spaces", "v{{yeyo_version}}", "v1.0.0"},
		{"commit message", "Release {{ yeyo_version }}", "Release 1.0.0"},
		{"bare placeholder", `__version__ = "yeyo_version"`, `__version__ = "1.0.0"`},
		{"repeated", "yeyo_version/yeyo_version", "1.0.0/1.0.0"},
		{"no placeholder", "release", "release"},
		{"unknown placeholder", "{{ other }}-{{ yeyo_version }}", "{{ other }}-1.0.0"},
		{"longer placeholder", "{{ yeyo_version_major }} {{ yeyo_version }}", "{{ yeyo_version_major }} 1.0.0"},
		{"bare inside identifier", "my_yeyo_version = yeyo_version", "my_yeyo_version = 1.0.0"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RenderVersion(tc.template, v))
		})
	}
}

func TestRenderLongestNameFirst(t *testing.T) {
	out := Render("{{ name_long }} name", map[string]string{
		"name":      "short",
		"name_long": "long",
	})
	assert.Equal(t, "long short", out)
}

func TestGitStrings(t *testing.T) {
	gs := GitStrings{TagTemplate: "v{{ yeyo_version }}", CommitTemplate: "Bump to {{ yeyo_version }}"}
	v := MustParseVersion("2.1.0-rc.1")
	assert.Equal(t, "v2.1.0-rc.1", gs.Tag(v))
	assert.Equal(t, "Bump to 2.1.0-rc.1", gs.Commit(v))

	cfg := NewConfig(MustParseVersion("1.0.0"))
	assert.Equal(t, "1.0.0", RenderTagString(cfg))
	assert.Equal(t, "1.0.0", RenderCommitString(cfg))
}

func TestTagIsSemver(t *testing.T) {
	assert.True(t, TagIsSemver("1.0.0"))
	assert.True(t, TagIsSemver("v1.0.0-rc.1"))
	assert.False(t, TagIsSemver("release"))
	assert.False(t, TagIsSemver("1.0"))
}
