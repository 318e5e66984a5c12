package yeyo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGit records the git operations of a bump.
type recordingGit struct {
	calls    []string
	cleanErr error
	tagErr   error
	allowed  []string
	staged   []string
}

func (g *recordingGit) CheckClean(_ context.Context, allowed []string) error {
	g.calls = append(g.calls, "check-clean")
	g.allowed = allowed
	return g.cleanErr
}

func (g *recordingGit) Commit(_ context.Context, message string, paths []string) error {
	g.calls = append(g.calls, "commit "+message)
	g.staged = paths
	return nil
}

func (g *recordingGit) Tag(_ context.Context, name string) error {
	g.calls = append(g.calls, "tag "+name)
	return g.tagErr
}

type bumpFixture struct {
	fs    afero.Fs
	store *ConfigStore
	git   *recordingGit
	cfg   *Config
}

func newBumpFixture(t *testing.T, version string) *bumpFixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "VERSION", version+"\n")
	writeFile(t, fs, "pkg/__init__.py", fmt.Sprintf("__version__ = %q\n", version))

	cfg := NewConfig(MustParseVersion(version))
	require.NoError(t, cfg.Files.Add("VERSION", ""))
	require.NoError(t, cfg.Files.Add("pkg/__init__.py", pyTemplate))

	store := NewConfigStore(fs, DefaultConfigPath)
	require.NoError(t, store.Save(cfg))
	return &bumpFixture{fs: fs, store: store, git: &recordingGit{}, cfg: cfg}
}

func (f *bumpFixture) bumper() *Bumper {
	return NewBumper(f.fs, f.git, f.store, nil)
}

func TestBumperMinor(t *testing.T) {
	f := newBumpFixture(t, "0.0.0-dev.1")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindMinor})
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", res.New.String())
	assert.Equal(t, StateDone, res.State)
	assert.Empty(t, f.git.calls)

	assert.Equal(t, "0.1.0\n", readFile(t, f.fs, "VERSION"))
	assert.Equal(t, "__version__ = \"0.1.0\"\n", readFile(t, f.fs, "pkg/__init__.py"))

	saved, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", saved.Version.String())
	// The input config is a value the caller still owns.
	assert.Equal(t, "0.0.0-dev.1", f.cfg.Version.String())
}

func TestBumperDryRun(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{
		Kind:     BumpKindMajor,
		DryRun:   true,
		TagAfter: true,
	})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, "2.0.0", res.New.String())
	assert.Equal(t, "2.0.0", res.Config.Version.String())
	assert.Equal(t, "2.0.0", res.Commit)
	assert.Equal(t, "2.0.0", res.TagAfter)

	// No dirty check under dry-run; commit and tag go to the (dry-run) collaborator.
	assert.Equal(t, []string{"commit 2.0.0", "tag 2.0.0"}, f.git.calls)
	assert.Equal(t, []string{"VERSION", "pkg/__init__.py", DefaultConfigPath}, f.git.staged)

	assert.Equal(t, "1.0.0\n", readFile(t, f.fs, "VERSION"))
	saved, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", saved.Version.String())
}

func TestBumperTagBeforeAndAfter(t *testing.T) {
	f := newBumpFixture(t, "1.0.0-rc.1")
	f.cfg.TagTemplate = "v{{ yeyo_version }}"
	f.cfg.CommitTemplate = "Release {{ yeyo_version }}"

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{
		Kind:      BumpKindFinalize,
		TagBefore: true,
		TagAfter:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0-rc.1", res.TagBefore)
	assert.Equal(t, "Release 1.0.0", res.Commit)
	assert.Equal(t, "v1.0.0", res.TagAfter)
	assert.Equal(t, []string{
		"check-clean",
		"tag v1.0.0-rc.1",
		"commit Release 1.0.0",
		"tag v1.0.0",
	}, f.git.calls)
	assert.Equal(t, []string{"VERSION", "pkg/__init__.py", DefaultConfigPath}, f.git.allowed)
	assert.Equal(t, []string{"VERSION", "pkg/__init__.py", DefaultConfigPath}, f.git.staged)
}

func TestBumperTagBeforeOnly(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindPatch, TagBefore: true})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", res.TagBefore)
	assert.Empty(t, res.TagAfter)
	assert.Equal(t, []string{"tag 1.0.0"}, f.git.calls)
}

func TestBumperDirtyRepo(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")
	f.git.cleanErr = newError(DirtyRepoError, "working directory is dirty")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindPatch, TagAfter: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDirtyRepo))
	assert.Equal(t, StateFailed, res.State)
	assert.Nil(t, res.Plan)
	assert.Equal(t, "1.0.0\n", readFile(t, f.fs, "VERSION"))
}

func TestBumperPartialFailure(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")
	writeFile(t, f.fs, "pkg/__init__.py", "# emptied\n")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindPatch, TagAfter: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.Equal(t, StateFailed, res.State)

	// The first file is rewritten, the config is not persisted and nothing is committed.
	assert.Equal(t, "1.0.1\n", readFile(t, f.fs, "VERSION"))
	saved, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", saved.Version.String())
	assert.Equal(t, []string{"check-clean"}, f.git.calls)
}

func TestBumperExplicit(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindExplicit, Explicit: "3.1.4-b.2"})
	require.NoError(t, err)
	assert.Equal(t, "3.1.4-b.2", res.New.String())
	assert.Equal(t, "3.1.4-b.2\n", readFile(t, f.fs, "VERSION"))

	_, err = f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindExplicit, Explicit: "3.1"})
	assert.True(t, errors.Is(err, ErrParse))
}

func TestBumperRejectsNoOp(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindExplicit, Explicit: "1.0.0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, StateFailed, res.State)
}

func TestBumperFinalizeFinalVersion(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")

	_, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindFinalize})
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, "1.0.0\n", readFile(t, f.fs, "VERSION"))
}

func TestBumperTagFailure(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")
	f.git.tagErr = newError(GitError, "tag exists")

	res, err := f.bumper().Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindPatch, TagBefore: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGit))
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, "1.0.0\n", readFile(t, f.fs, "VERSION"))
}

func TestBumperWithoutGit(t *testing.T) {
	f := newBumpFixture(t, "1.0.0")
	b := NewBumper(f.fs, nil, f.store, nil)

	_, err := b.Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindPatch, TagAfter: true})
	assert.True(t, errors.Is(err, ErrGit))

	res, err := b.Bump(context.Background(), f.cfg, BumpOptions{Kind: BumpKindPatch})
	require.NoError(t, err)
	assert.Equal(t, "1.0.1", res.New.String())
}
