package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	yeyo "github.com/tshauck/yeyo/pkg"
)

// Version is the version of the yeyo binary, set by main.
var Version = "dev"

// app carries the process settings shared by every command.
type app struct {
	settings *viper.Viper
	// dir is the project directory; empty means the working directory.
	dir    string
	fs     afero.Fs
	logger *zap.Logger
}

// Option configures the command tree.
type Option func(*app)

// WithDir runs yeyo against the project in dir instead of the working
// directory.
func WithDir(dir string) Option {
	return func(a *app) {
		a.dir = dir
	}
}

// NewRootCmd builds the yeyo command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{settings: viper.New(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   "yeyo",
		Short: "Semantic version bumping across the files of a project",
		Long: `yeyo keeps the version of a project in a config document and bumps it
across every tracked file at once.

Each tracked file has a match template; rendered with the current version it
identifies the line to rewrite. A bump can tag the version it leaves, and
commit and tag the version it produces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(FlagConfigPath, "c", yeyo.DefaultConfigPath, DescConfigPath)
	flags.String(FlagLogLevel, yeyo.LogLevelWarn, DescLogLevel)
	flags.Bool(FlagNoColor, false, DescNoColor)
	for _, name := range []string{FlagConfigPath, FlagLogLevel, FlagNoColor} {
		_ = a.settings.BindPFlag(name, flags.Lookup(name))
	}
	a.settings.SetEnvPrefix(envPrefix)
	a.settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.settings.AutomaticEnv()

	rootCmd.AddCommand(
		newInitCmd(a),
		newVersionCmd(),
		newFilesCmd(a),
		newBumpCmd(a),
		newRenderTagStringCmd(a),
		newRenderCommitStringCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// Execute runs the command line against the working directory.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup() error {
	logger, err := yeyo.NewLogger(a.settings.GetString(FlagLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", FlagLogLevel, err)
	}
	a.logger = logger
	if a.settings.GetBool(FlagNoColor) {
		color.NoColor = true
	}
	if a.fs == nil {
		a.fs = afero.NewOsFs()
		if a.dir != "" {
			a.fs = afero.NewBasePathFs(a.fs, a.dir)
		}
	}
	return nil
}

func (a *app) store() *yeyo.ConfigStore {
	return yeyo.NewConfigStore(a.fs, a.settings.GetString(FlagConfigPath))
}

func (a *app) load() (*yeyo.Config, *yeyo.ConfigStore, error) {
	store := a.store()
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("loaded config", zap.String("path", store.Path()), zap.String("version", cfg.Version.String()))
	return cfg, store, nil
}

func (a *app) git(dryRun bool, out io.Writer) *yeyo.ExecGit {
	return yeyo.NewExecGit(a.dir, dryRun, out, a.logger)
}

func (a *app) rewriter() *yeyo.Rewriter {
	return yeyo.NewRewriter(a.fs, a.logger)
}
