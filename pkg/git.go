package yeyo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// GitStrings renders the configured tag and commit templates.
type GitStrings struct {
	TagTemplate    string
	CommitTemplate string
}

// Tag renders the tag template against v.
func (g GitStrings) Tag(v Version) string {
	return RenderVersion(g.TagTemplate, v)
}

// Commit renders the commit template against v.
func (g GitStrings) Commit(v Version) string {
	return RenderVersion(g.CommitTemplate, v)
}

// TagIsSemver reports whether tag, with or without a leading "v", is a valid
// semantic version. Templates may legitimately produce other tags; callers
// only warn.
func TagIsSemver(tag string) bool {
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	return isFullSemver(tag)
}

// Git is the version-control collaborator of a bump.
type Git interface {
	// CheckClean fails when files other than allowed have uncommitted changes.
	CheckClean(ctx context.Context, allowed []string) error
	// Commit stages paths and commits them with message.
	Commit(ctx context.Context, message string, paths []string) error
	// Tag creates a lightweight tag on HEAD.
	Tag(ctx context.Context, name string) error
}

// CheckGit verifies that git is available on the system.
func CheckGit() error {
	cmd := exec.Command("git", "--version")
	if err := cmd.Run(); err != nil {
		return newError(GitError, "git is not available on the system")
	}
	return nil
}

// ExecGit runs the git binary. With DryRun set, commands that would change
// the repository are printed to Out instead of executed.
type ExecGit struct {
	// Dir is the working directory of git; empty means the current one.
	Dir    string
	DryRun bool
	Out    io.Writer
	Logger *zap.Logger
}

// NewExecGit returns an ExecGit in dir.
func NewExecGit(dir string, dryRun bool, out io.Writer, logger *zap.Logger) *ExecGit {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecGit{Dir: dir, DryRun: dryRun, Out: out, Logger: logger}
}

func (g *ExecGit) run(ctx context.Context, mutating bool, args ...string) (string, error) {
	if mutating && g.DryRun {
		_, err := fmt.Fprintf(g.Out, "would run: git %s\n", quoteArgs(args))
		return "", err
	}
	g.Logger.Debug("running git", zap.Strings("args", args), zap.String("dir", g.Dir))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &Error{
			Kind:    GitError,
			Message: fmt.Sprintf("git %s failed, detail: %s", args[0], strings.TrimSpace(stderr.String())),
			Cause:   err,
		}
	}
	return stdout.String(), nil
}

// Tag creates a lightweight tag named name on HEAD.
func (g *ExecGit) Tag(ctx context.Context, name string) error {
	if name == "" {
		return newError(GitError, "refusing to create an empty tag")
	}
	_, err := g.run(ctx, true, "tag", name)
	return err
}

// Commit stages paths and commits them with message.
func (g *ExecGit) Commit(ctx context.Context, message string, paths []string) error {
	if len(paths) > 0 {
		addArgs := append([]string{"add", "--"}, paths...)
		if _, err := g.run(ctx, true, addArgs...); err != nil {
			return err
		}
	}
	_, err := g.run(ctx, true, "commit", "-m", message)
	return err
}

// LatestTag returns the most recent tag reachable from HEAD, without a
// leading "v".
func (g *ExecGit) LatestTag(ctx context.Context) (string, error) {
	out, err := g.run(ctx, false, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v"), nil
}

// CheckClean fails with a DirtyRepoError when files other than allowed have
// uncommitted changes, untracked files included.
func (g *ExecGit) CheckClean(ctx context.Context, allowed []string) error {
	top, err := g.run(ctx, false, "rev-parse", "--show-toplevel")
	if err != nil {
		return err
	}
	root := strings.TrimSpace(top)

	out, err := g.run(ctx, false, "status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return err
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(g.Dir, p)
		}
		abs, err := canonicalPath(p)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", f, err)
		}
		allowedSet[abs] = struct{}{}
	}

	var dirty []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+len(" -> "):]
		}
		if unq, err := strconv.Unquote(path); err == nil {
			path = unq
		}
		abs, err := canonicalPath(filepath.Join(root, path))
		if err != nil {
			continue
		}
		if _, ok := allowedSet[abs]; !ok {
			dirty = append(dirty, path)
		}
	}

	if len(dirty) > 0 {
		return newError(DirtyRepoError, "working directory is dirty; uncommitted files not included in commit: %v", dirty)
	}
	return nil
}

// canonicalPath returns an absolute path with symlinks resolved as far as
// the path exists.
func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

func quoteArgs(args []string) string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			out[i] = strconv.Quote(a)
		} else {
			out[i] = a
		}
	}
	return strings.Join(out, " ")
}
