package yeyo

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// State is the position of a bump in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateRewriting
	StateTaggedBefore
	StateTaggedAfter
	StateUntagged
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateRewriting:
		return "rewriting"
	case StateTaggedBefore:
		return "tagged-before"
	case StateTaggedAfter:
		return "tagged-after"
	case StateUntagged:
		return "untagged"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BumpOptions selects how the new version is computed and which side
// effects run.
type BumpOptions struct {
	Kind BumpKind
	// Prerel turns a major, minor or patch bump into a prerelease of it.
	Prerel bool
	// Token is the prerelease token; empty means the default.
	Token Token
	// Explicit is the target version of a BumpKindExplicit.
	Explicit string

	DryRun    bool
	TagBefore bool
	TagAfter  bool
}

// ConfigSaver persists the config at the end of a successful bump.
type ConfigSaver interface {
	Path() string
	Save(cfg *Config) error
}

// BumpResult holds metadata about the bump operation.
type BumpResult struct {
	Old  Version
	New  Version
	Kind BumpKind
	Plan *RewritePlan
	// TagBefore, Commit and TagAfter are the rendered git strings, empty when
	// the matching step did not run.
	TagBefore string
	Commit    string
	TagAfter  string
	State     State
	DryRun    bool
	// Config is the config carrying New. It is only persisted by a real run
	// that succeeded.
	Config *Config
}

// Bumper runs a version bump: it rewrites tracked files, persists the config
// and optionally tags and commits.
type Bumper struct {
	rewriter *Rewriter
	git      Git
	store    ConfigSaver
	logger   *zap.Logger
}

// NewBumper returns a Bumper. git may be nil when no tagging is requested.
func NewBumper(fs afero.Fs, git Git, store ConfigSaver, logger *zap.Logger) *Bumper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bumper{
		rewriter: NewRewriter(fs, logger),
		git:      git,
		store:    store,
		logger:   logger,
	}
}

// ResolveVersion computes the version opts asks for, starting at cur.
func ResolveVersion(cur Version, opts BumpOptions) (Version, error) {
	if opts.Kind == BumpKindExplicit {
		if opts.Explicit == "" {
			return Version{}, newError(InvalidStateError, "explicit bump needs a version")
		}
		return ParseVersion(opts.Explicit)
	}
	return Bump(cur, opts.Kind, opts.Prerel, opts.Token)
}

func (b *Bumper) transition(res *BumpResult, s State) {
	b.logger.Debug("bump state", zap.String("from", res.State.String()), zap.String("to", s.String()))
	res.State = s
}

func (b *Bumper) fail(res *BumpResult, err error) (*BumpResult, error) {
	b.transition(res, StateFailed)
	return res, err
}

// Bump moves cfg from its current version according to opts. The result is
// returned even on failure so callers can report the per-file plan. cfg
// itself is never modified.
func (b *Bumper) Bump(ctx context.Context, cfg *Config, opts BumpOptions) (*BumpResult, error) {
	res := &BumpResult{Old: cfg.Version, Kind: opts.Kind, DryRun: opts.DryRun}
	gs := cfg.GitStrings()

	// 1. Determine the new version
	b.transition(res, StateResolving)
	next, err := ResolveVersion(cfg.Version, opts)
	if err != nil {
		return b.fail(res, err)
	}
	res.New = next

	// Prevent no-op
	if Compare(res.Old, res.New) == 0 {
		return b.fail(res, newError(InvalidStateError, "new version (%s) is the same as the current version", res.New))
	}
	res.Config = cfg.WithVersion(res.New)

	if (opts.TagBefore || opts.TagAfter) && b.git == nil {
		return b.fail(res, newError(GitError, "tagging requested but no git repository is configured"))
	}

	// 2. Check for uncommitted files
	paths := cfg.Files.Paths()
	if opts.TagAfter && !opts.DryRun {
		allowed := append([]string{}, paths...)
		if p := b.storePath(); p != "" {
			allowed = append(allowed, p)
		}
		if err := b.git.CheckClean(ctx, allowed); err != nil {
			return b.fail(res, err)
		}
	}

	// 3. Tag the state being left
	if opts.TagBefore {
		res.TagBefore = gs.Tag(res.Old)
		b.warnTag(res.TagBefore)
		if err := b.git.Tag(ctx, res.TagBefore); err != nil {
			return b.fail(res, fmt.Errorf("tagging %s: %w", res.Old, err))
		}
	}

	// 4. Rewrite tracked files
	b.transition(res, StateRewriting)
	plan, err := b.rewriter.Rewrite(cfg.Files.List(), res.Old, res.New, opts.DryRun)
	res.Plan = plan
	if err != nil {
		return b.fail(res, err)
	}

	// 5. Persist the config
	if !opts.DryRun && b.store != nil {
		if err := b.store.Save(res.Config); err != nil {
			return b.fail(res, err)
		}
	}

	// 6. Stage, commit, and tag
	switch {
	case opts.TagAfter:
		res.Commit = gs.Commit(res.New)
		res.TagAfter = gs.Tag(res.New)
		b.warnTag(res.TagAfter)

		staged := plan.Written()
		if opts.DryRun {
			staged = paths
		}
		if p := b.storePath(); p != "" {
			staged = append(staged, p)
		}
		if err := b.git.Commit(ctx, res.Commit, staged); err != nil {
			return b.fail(res, err)
		}
		if err := b.git.Tag(ctx, res.TagAfter); err != nil {
			return b.fail(res, fmt.Errorf("tagging %s: %w", res.New, err))
		}
		b.transition(res, StateTaggedAfter)
	case opts.TagBefore:
		b.transition(res, StateTaggedBefore)
	default:
		b.transition(res, StateUntagged)
	}

	b.transition(res, StateDone)
	b.logger.Info("bumped version", zap.String("old", res.Old.String()), zap.String("new", res.New.String()), zap.Bool("dry_run", opts.DryRun))
	return res, nil
}

func (b *Bumper) storePath() string {
	if b.store == nil {
		return ""
	}
	return b.store.Path()
}

func (b *Bumper) warnTag(tag string) {
	if !TagIsSemver(tag) {
		b.logger.Warn("tag is not a semantic version", zap.String("tag", tag))
	}
}

// RenderTagString renders the tag template against the current version.
func RenderTagString(cfg *Config) string {
	return cfg.GitStrings().Tag(cfg.Version)
}

// RenderCommitString renders the commit template against the current version.
func RenderCommitString(cfg *Config) string {
	return cfg.GitStrings().Commit(cfg.Version)
}
