package yeyo

import (
	"regexp"
	"sort"
	"strings"
)

// VersionPlaceholder is the template name bound to a version's canonical string.
const VersionPlaceholder = "yeyo_version"

// DefaultMatchTemplate is the match template for newly tracked files: the
// file is expected to contain the bare current version. Only whole versions
// match, so 1.0.0 is not found inside 11.0.0.
const DefaultMatchTemplate = VersionPlaceholder

// DefaultTagTemplate and DefaultCommitTemplate render to the bare version.
const (
	DefaultTagTemplate    = "{{ " + VersionPlaceholder + " }}"
	DefaultCommitTemplate = "{{ " + VersionPlaceholder + " }}"
)

// VersionBindings returns the bindings for rendering templates against v.
func VersionBindings(v Version) map[string]string {
	return map[string]string{VersionPlaceholder: v.String()}
}

// Render substitutes every binding in template. A binding name is replaced
// both in its delimited form "{{ name }}" (any inner whitespace) and in its
// bare form "name" when that is not part of a longer identifier. Anything
// else, including unknown placeholders such as "{{ name_major }}", is left
// untouched.
func Render(template string, bindings map[string]string) string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		if name != "" {
			names = append(names, name)
		}
	}
	// Longer names first so a name that prefixes another cannot split it.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	out := template
	for _, name := range names {
		value := bindings[name]
		delimited := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(name) + `\s*\}\}`)
		out = delimited.ReplaceAllLiteralString(out, value)
		out = replaceWord(out, name, value)
	}
	return out
}

// replaceWord replaces every occurrence of name in s that is not adjacent
// to an identifier byte.
func replaceWord(s, name, value string) string {
	var b strings.Builder
	from := 0
	for {
		i := strings.Index(s[from:], name)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(name)
		if (start > 0 && identByte(s[start-1])) || (end < len(s) && identByte(s[end])) {
			b.WriteString(s[from:end])
			from = end
			continue
		}
		b.WriteString(s[from:start])
		b.WriteString(value)
		from = end
	}
	b.WriteString(s[from:])
	return b.String()
}

func identByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// RenderVersion renders template against v.
func RenderVersion(template string, v Version) string {
	return Render(template, VersionBindings(v))
}
