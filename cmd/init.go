package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	yeyo "github.com/tshauck/yeyo/pkg"
)

// defaultVersionFile is created and tracked by init when no file is given.
const defaultVersionFile = "VERSION"

type initOptions struct {
	files           []string
	startingVersion string
	fromGit         bool
	force           bool
	dryRun          bool
}

func newInitCmd(a *app) *cobra.Command {
	opts := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the yeyo config for a project",
		Long: `Create the yeyo config for a project.

Without --file, a VERSION file holding the starting version is created and
tracked. Tracked files use the default match template, which matches the bare
version; use "yeyo files add -m" for anything else.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.files, FlagFile, "f", nil, DescFile)
	cmd.Flags().StringVar(&opts.startingVersion, FlagStartingVersion, yeyo.StartingVersion, DescStartingVersion)
	cmd.Flags().BoolVar(&opts.fromGit, FlagFromGit, false, DescFromGit)
	cmd.Flags().BoolVar(&opts.force, FlagForce, false, DescForce)
	cmd.Flags().BoolVar(&opts.dryRun, FlagDryRun, false, DescDryRunConfig)
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, opts *initOptions) error {
	out := cmd.OutOrStdout()
	store := a.store()
	if store.Exists() && !opts.force {
		return &yeyo.Error{
			Kind:    yeyo.ConfigError,
			Path:    store.Path(),
			Message: fmt.Sprintf("config already exists (use --%s to overwrite)", FlagForce),
		}
	}

	raw := opts.startingVersion
	if opts.fromGit {
		tag, err := a.git(false, out).LatestTag(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading the latest git tag: %w", err)
		}
		raw = tag
	}
	version, err := yeyo.ParseVersion(raw)
	if err != nil {
		return err
	}

	cfg := yeyo.NewConfig(version)
	files := opts.files
	if len(files) == 0 {
		files = []string{defaultVersionFile}
		exists, err := afero.Exists(a.fs, defaultVersionFile)
		if err != nil {
			return err
		}
		if !exists && opts.dryRun {
			printWarning(out, "Would create %s", defaultVersionFile)
		} else if !exists {
			if err := afero.WriteFile(a.fs, defaultVersionFile, []byte(version.String()+"\n"), 0644); err != nil {
				return fmt.Errorf("creating %s: %w", defaultVersionFile, err)
			}
			a.logger.Debug("created version file", zap.String("path", defaultVersionFile))
		}
	}
	for _, f := range files {
		if err := cfg.Files.Add(f, ""); err != nil {
			return err
		}
	}

	if opts.dryRun {
		return printDryRunConfig(out, cfg)
	}
	if err := store.Save(cfg); err != nil {
		return err
	}
	printSuccess(out, "Initialized %s at version %s tracking %d file(s)", store.Path(), version, cfg.Files.Len())
	return nil
}
