package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	yeyo "github.com/tshauck/yeyo/pkg"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.FgHiBlack).SprintFunc()
)

// printSuccess prints a success message
func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// printWarning prints a warning message
func printWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

// PrintError writes every error aggregated in err on its own line.
func PrintError(w io.Writer, err error) {
	for _, e := range yeyo.Errors(err) {
		fmt.Fprintf(w, "%s %v\n", red("Error:"), e)
	}
}

// printSummary prints the outcome of a bump in the same layout for real and
// dry runs.
func printSummary(w io.Writer, res *yeyo.BumpResult) {
	if res.DryRun {
		fmt.Fprintln(w, "Dry run complete, no files were modified.")
	} else {
		printSuccess(w, "Version bump successful!")
	}
	fmt.Fprintf(w, "Old Version: %s\n", res.Old)
	fmt.Fprintf(w, "New Version: %s\n", res.New)
	fmt.Fprintf(w, "Bump Type:   %s\n", res.Kind)
	if res.TagBefore != "" {
		fmt.Fprintf(w, "Tag Before:  %s\n", res.TagBefore)
	}
	if res.Commit != "" {
		fmt.Fprintf(w, "Commit:      %s\n", res.Commit)
	}
	if res.TagAfter != "" {
		fmt.Fprintf(w, "Tag After:   %s\n", res.TagAfter)
	}
}

// printDryRunConfig prints the config a dry run would have saved.
func printDryRunConfig(w io.Writer, cfg *yeyo.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "New config:\n%s", data)
	return err
}
