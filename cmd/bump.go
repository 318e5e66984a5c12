package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	yeyo "github.com/tshauck/yeyo/pkg"
)

type bumpFlags struct {
	dryRun    bool
	diff      bool
	tagBefore bool
	tagAfter  bool
	prerel    bool
	token     string
}

func newBumpCmd(a *app) *cobra.Command {
	flags := &bumpFlags{}
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Bump the version in every tracked file",
		Long: `Bump the version in every tracked file and in the config.

Examples:
  # 1.2.3 -> 1.2.4
  yeyo bump patch

  # 1.2.3 -> 2.0.0-dev.0, then 2.0.0-dev.1
  yeyo bump major --prerel
  yeyo bump prerelease

  # 2.0.0-dev.1 -> 2.0.0-rc.0 -> 2.0.0
  yeyo bump prerelease -p rc
  yeyo bump finalize --git-tag-after

  # Set a version directly
  yeyo bump to 3.1.0-b.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown bump kind %q for %q", args[0], cmd.CommandPath())
		},
	}
	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.dryRun, FlagDryRun, false, DescDryRun)
	pf.BoolVar(&flags.diff, FlagDiff, false, DescDiff)
	pf.BoolVar(&flags.tagBefore, FlagGitTagBefore, false, DescGitTagBefore)
	pf.BoolVar(&flags.tagAfter, FlagGitTagAfter, false, DescGitTagAfter)

	for _, kind := range []yeyo.BumpKind{yeyo.BumpKindMajor, yeyo.BumpKindMinor, yeyo.BumpKindPatch} {
		sub := a.newBumpKindCmd(kind, flags, fmt.Sprintf("Bump the %s version", kind))
		sub.Flags().BoolVar(&flags.prerel, FlagPrerel, false, DescPrerel)
		sub.Flags().StringVarP(&flags.token, FlagPrereleaseToken, "p", "", DescPrereleaseToken)
		cmd.AddCommand(sub)
	}

	pre := a.newBumpKindCmd(yeyo.BumpKindPrerelease, flags, "Bump the prerelease number, or switch to another token with -p")
	pre.Flags().StringVarP(&flags.token, FlagPrereleaseToken, "p", "", DescPrereleaseToken)
	cmd.AddCommand(pre)

	cmd.AddCommand(a.newBumpKindCmd(yeyo.BumpKindFinalize, flags, "Drop the prerelease of the version"))

	cmd.AddCommand(&cobra.Command{
		Use:   "to VERSION",
		Short: "Set the version explicitly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBump(cmd, flags, yeyo.BumpOptions{Kind: yeyo.BumpKindExplicit, Explicit: args[0]})
		},
	})
	return cmd
}

func (a *app) newBumpKindCmd(kind yeyo.BumpKind, flags *bumpFlags, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBump(cmd, flags, yeyo.BumpOptions{Kind: kind, Prerel: flags.prerel})
		},
	}
}

func (a *app) runBump(cmd *cobra.Command, flags *bumpFlags, opts yeyo.BumpOptions) error {
	out := cmd.OutOrStdout()
	if flags.token != "" {
		tok, err := yeyo.ParseToken(flags.token)
		if err != nil {
			return err
		}
		opts.Token = tok
	}
	opts.DryRun = flags.dryRun
	opts.TagBefore = flags.tagBefore
	opts.TagAfter = flags.tagAfter

	cfg, store, err := a.load()
	if err != nil {
		return err
	}

	var git yeyo.Git
	if opts.TagBefore || opts.TagAfter {
		if err := yeyo.CheckGit(); err != nil {
			return err
		}
		git = a.git(opts.DryRun, out)
	}

	res, err := yeyo.NewBumper(a.fs, git, store, a.logger).Bump(cmd.Context(), cfg, opts)
	if res != nil && res.Plan != nil {
		if rerr := yeyo.WriteReport(out, res.Plan, opts.DryRun, flags.diff); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return err
	}

	printSummary(out, res)
	if opts.DryRun {
		return printDryRunConfig(out, res.Config)
	}
	return nil
}
