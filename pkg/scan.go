package yeyo

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// VersionLine is a line of a file that contains a version string.
type VersionLine struct {
	// Line is 1-based.
	Line int
	Text string
	// Template is the trimmed line with the version replaced by the
	// placeholder, usable as a match template.
	Template string
	// Main is set when the line looks like the primary version declaration
	// of the file rather than a dependency or a mention.
	Main bool
}

// mainVersionPatterns match declarations that are typically the version of
// the project itself.
var mainVersionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*"version"\s*:\s*"`),                    // package.json
	regexp.MustCompile(`^\s*version\s*=\s*"`),                      // Cargo.toml, pyproject.toml
	regexp.MustCompile(`(?i)^\s*(__)?version(__)?\s*[:=]`),         // __version__ = "...", VERSION := ...
	regexp.MustCompile(`^\s*(var|const)?\s*\(?\s*Version\s*=\s*"`), // Go version files
	regexp.MustCompile(`^\s*<version>`),                            // pom.xml
}

// Scan returns every line of path that contains v, in file order.
func (rw *Rewriter) Scan(path string, v Version) ([]VersionLine, error) {
	data, err := afero.ReadFile(rw.fs, path)
	if err != nil {
		return nil, newFileError(IOError, path, "cannot read file", err)
	}

	version := v.String()
	var out []VersionLine
	for i, raw := range bytes.SplitAfter(data, []byte("\n")) {
		body, _ := splitLineEnding(string(raw))
		pos := indexVersion(body, version, v.IsPrerelease(), 0)
		if pos < 0 {
			continue
		}
		vl := VersionLine{
			Line: i + 1,
			Text: body,
		}
		placeholder := VersionPlaceholder
		if pos > 0 && identByte(body[pos-1]) {
			placeholder = "{{ " + VersionPlaceholder + " }}"
		}
		vl.Template = strings.TrimSpace(body[:pos] + placeholder + body[pos+len(version):])
		for _, re := range mainVersionPatterns {
			if re.MatchString(body) {
				vl.Main = true
				break
			}
		}
		out = append(out, vl)
	}
	return out, nil
}

// SuggestMatchTemplate picks the match template of the first main line, or
// of the first line when none looks like a declaration.
func SuggestMatchTemplate(lines []VersionLine) (string, bool) {
	for _, l := range lines {
		if l.Main {
			return l.Template, true
		}
	}
	if len(lines) > 0 {
		return lines[0].Template, true
	}
	return "", false
}

// indexVersion finds version in line, at or after from, as a whole version:
// 1.0.0 does not match inside 11.0.0 or, for a final version, inside
// 1.0.0-rc.1.
func indexVersion(line, version string, prerelease bool, from int) int {
	for {
		i := strings.Index(line[from:], version)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(version)
		if !versionByte(line, start-1) && !versionByte(line, end) && (prerelease || !suffixByte(line, end)) {
			return start
		}
		from = start + 1
	}
}

func versionByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c == '.' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' || c >= '0' && c <= '9'
}

func suffixByte(s string, i int) bool {
	if i+1 >= len(s) {
		return false
	}
	return (s[i] == '-' || s[i] == '+') && (s[i+1] >= 'a' && s[i+1] <= 'z' || s[i+1] >= '0' && s[i+1] <= '9')
}
