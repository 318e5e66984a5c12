package yeyo

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Outcome is the result of scanning one tracked file.
type Outcome int

const (
	// OutcomeMatched means a line containing the needle was found.
	OutcomeMatched Outcome = iota + 1
	// OutcomeNoMatch means no line contains the needle.
	OutcomeNoMatch
	// OutcomeIOFailure means the file could not be read or written.
	OutcomeIOFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatch:
		return "no match"
	case OutcomeIOFailure:
		return "io failure"
	default:
		return "unknown"
	}
}

// FileChange is the planned (and, after Apply, performed) edit of one file.
type FileChange struct {
	File    TrackedFile
	Outcome Outcome
	// Needle is the match template rendered against the old version.
	Needle string
	// Line is the 1-based number of the matched line, 0 when unmatched.
	Line int
	// OldLine and NewLine exclude the line ending.
	OldLine string
	NewLine string
	// Written is set once the new content is on disk.
	Written bool
	Err     error

	content    []byte
	newContent []byte
}

// RewritePlan holds one FileChange per tracked file, in registry order.
type RewritePlan struct {
	Old     Version
	New     Version
	Changes []FileChange
}

// Err aggregates the errors of every file. It is nil when all files matched
// (and, after Apply, were written).
func (p *RewritePlan) Err() error {
	var err error
	for _, c := range p.Changes {
		err = multierr.Append(err, c.Err)
	}
	return err
}

// Written returns the paths that were rewritten on disk.
func (p *RewritePlan) Written() []string {
	var out []string
	for _, c := range p.Changes {
		if c.Written {
			out = append(out, c.File.Path)
		}
	}
	return out
}

// Rewriter finds and replaces version strings in tracked files.
type Rewriter struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewRewriter returns a Rewriter on fs. A nil fs means the OS filesystem.
func NewRewriter(fs afero.Fs, logger *zap.Logger) *Rewriter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rewriter{fs: fs, logger: logger}
}

// Plan scans every file for the first line containing its rendered match
// template and computes the replacement. Failures are recorded per file and
// never stop the scan.
func (rw *Rewriter) Plan(files []TrackedFile, old, new Version) *RewritePlan {
	plan := &RewritePlan{Old: old, New: new, Changes: make([]FileChange, 0, len(files))}
	for _, f := range files {
		plan.Changes = append(plan.Changes, rw.planFile(f, old, new))
	}
	return plan
}

func (rw *Rewriter) planFile(f TrackedFile, old, new Version) FileChange {
	c := FileChange{File: f, Needle: RenderVersion(f.MatchTemplate, old)}
	log := rw.logger.With(zap.String("path", f.Path), zap.String("needle", c.Needle))

	if c.Needle == "" {
		c.Outcome = OutcomeNoMatch
		c.Err = newFileError(NoMatchError, f.Path, "match template renders to an empty string", nil)
		return c
	}

	data, err := afero.ReadFile(rw.fs, f.Path)
	if err != nil {
		log.Debug("read failed", zap.Error(err))
		c.Outcome = OutcomeIOFailure
		c.Err = newFileError(IOError, f.Path, "cannot read file", err)
		return c
	}
	c.content = data

	newStr := new.String()
	// Line of the first needle hit that did not carry the old version.
	versionless := 0
	offset := 0
	for i, raw := range bytes.SplitAfter(data, []byte("\n")) {
		line := string(raw)
		start := offset
		offset += len(raw)
		if !strings.Contains(line, c.Needle) {
			continue
		}

		body, ending := splitLineEnding(line)
		replaced, ok := replaceVersion(body, c.Needle, old, newStr)
		if !ok {
			if versionless == 0 {
				versionless = i + 1
			}
			continue
		}
		c.Line = i + 1
		c.OldLine = body
		c.NewLine = replaced
		c.Outcome = OutcomeMatched

		var buf bytes.Buffer
		buf.Grow(len(data) - len(raw) + len(replaced) + len(ending))
		buf.Write(data[:start])
		buf.WriteString(replaced)
		buf.WriteString(ending)
		buf.Write(data[offset:])
		c.newContent = buf.Bytes()

		log.Debug("matched", zap.Int("line", c.Line), zap.String("old_line", c.OldLine), zap.String("new_line", c.NewLine))
		return c
	}

	if versionless > 0 {
		c.Line = versionless
		c.Outcome = OutcomeNoMatch
		c.Err = newFileError(NoMatchError, f.Path, fmt.Sprintf("line %d matches the template but does not contain version %s", c.Line, old), nil)
		return c
	}
	c.Outcome = OutcomeNoMatch
	c.Err = newFileError(NoMatchError, f.Path, fmt.Sprintf("no line contains %q", c.Needle), nil)
	return c
}

// Apply writes every matched file. Files are written in order and a failed
// write does not undo earlier ones.
func (rw *Rewriter) Apply(plan *RewritePlan) error {
	for i := range plan.Changes {
		c := &plan.Changes[i]
		if c.Outcome != OutcomeMatched {
			continue
		}
		mode := os.FileMode(0644)
		if fi, err := rw.fs.Stat(c.File.Path); err == nil {
			mode = fi.Mode().Perm()
		}
		if err := afero.WriteFile(rw.fs, c.File.Path, c.newContent, mode); err != nil {
			rw.logger.Warn("write failed", zap.String("path", c.File.Path), zap.Error(err))
			c.Outcome = OutcomeIOFailure
			c.Err = newFileError(IOError, c.File.Path, "cannot write file", err)
			continue
		}
		c.Written = true
		rw.logger.Debug("rewrote file", zap.String("path", c.File.Path), zap.Int("line", c.Line))
	}
	return plan.Err()
}

// Rewrite plans the change of every file from old to new and, unless dryRun,
// applies it. The returned error aggregates all per-file failures.
func (rw *Rewriter) Rewrite(files []TrackedFile, old, new Version, dryRun bool) (*RewritePlan, error) {
	plan := rw.Plan(files, old, new)
	if dryRun {
		return plan, plan.Err()
	}
	return plan, rw.Apply(plan)
}

// replaceVersion swaps the first whole occurrence of old at or after the
// needle, falling back to the first whole occurrence anywhere in line.
func replaceVersion(line, needle string, old Version, new string) (string, bool) {
	oldStr := old.String()
	from := strings.Index(line, needle)
	if from < 0 {
		from = 0
	}
	pos := indexVersion(line, oldStr, old.IsPrerelease(), from)
	if pos < 0 {
		if pos = indexVersion(line, oldStr, old.IsPrerelease(), 0); pos < 0 {
			return line, false
		}
	}
	return line[:pos] + new + line[pos+len(oldStr):], true
}

func splitLineEnding(line string) (body, ending string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
