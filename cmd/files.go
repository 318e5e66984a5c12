package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	yeyo "github.com/tshauck/yeyo/pkg"
)

func newFilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage the files whose version yeyo rewrites",
	}
	cmd.AddCommand(
		newFilesListCmd(a),
		newFilesAddCmd(a),
		newFilesRemoveCmd(a),
		newFilesScanCmd(a),
	)
	return cmd
}

func newFilesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the tracked files and their match templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range cfg.Files.List() {
				fmt.Fprintf(out, "%s\t%s\n", f.Path, faint(f.MatchTemplate))
			}
			return nil
		},
	}
}

func newFilesAddCmd(a *app) *cobra.Command {
	var matchTemplate string
	var detect, dryRun bool
	cmd := &cobra.Command{
		Use:   "add PATH...",
		Short: "Track files",
		Long: `Track files.

The match template, rendered with the current version, must appear on the line
to rewrite. The default template is the bare version. With --detect, the
template is derived from the line of each file that holds the current version.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if detect && matchTemplate != "" {
				return fmt.Errorf("--%s and --%s are mutually exclusive", FlagDetect, FlagMatchTemplate)
			}
			cfg, store, err := a.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range args {
				tmpl := matchTemplate
				if detect {
					if tmpl, err = a.detectTemplate(path, cfg.Version); err != nil {
						return err
					}
				}
				if err := cfg.Files.Add(path, tmpl); err != nil {
					return err
				}
				printSuccess(out, "Tracking %s", path)
			}
			if dryRun {
				return printDryRunConfig(out, cfg)
			}
			return store.Save(cfg)
		},
	}
	cmd.Flags().StringVarP(&matchTemplate, FlagMatchTemplate, "m", "", DescMatchTemplate)
	cmd.Flags().BoolVar(&detect, FlagDetect, false, DescDetect)
	cmd.Flags().BoolVar(&dryRun, FlagDryRun, false, DescDryRunConfig)
	return cmd
}

func (a *app) detectTemplate(path string, v yeyo.Version) (string, error) {
	lines, err := a.rewriter().Scan(path, v)
	if err != nil {
		return "", err
	}
	tmpl, ok := yeyo.SuggestMatchTemplate(lines)
	if !ok {
		return "", &yeyo.Error{Kind: yeyo.NoMatchError, Path: path, Message: fmt.Sprintf("no line contains version %s", v)}
	}
	return tmpl, nil
}

func newFilesRemoveCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "rm PATH...",
		Aliases: []string{"remove"},
		Short:   "Stop tracking files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := a.load()
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := cfg.Files.Remove(path); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Untracked %s", path)
			}
			if dryRun {
				return printDryRunConfig(cmd.OutOrStdout(), cfg)
			}
			return store.Save(cfg)
		},
	}
	cmd.Flags().BoolVar(&dryRun, FlagDryRun, false, DescDryRunConfig)
	return cmd
}

func newFilesScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan PATH",
		Short: "Show the lines of a file that hold the current version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}
			lines, err := a.rewriter().Scan(args[0], cfg.Version)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				printWarning(out, "%s does not contain version %s", args[0], cfg.Version)
				return nil
			}
			for _, l := range lines {
				marker := " "
				if l.Main {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %d: %s\n    %s %s\n", marker, l.Line, l.Text, faint("match template:"), l.Template)
			}
			return nil
		},
	}
}
