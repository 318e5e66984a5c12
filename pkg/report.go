package yeyo

import (
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff of the file before and after the change, or
// an empty string when the change did not match.
func (c FileChange) Diff() (string, error) {
	if c.newContent == nil {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(c.content)),
		B:        difflib.SplitLines(string(c.newContent)),
		FromFile: "a/" + c.File.Path,
		ToFile:   "b/" + c.File.Path,
		Context:  1,
	})
}

// WriteReport writes the would-be (or performed) replacement of every matched
// file. Files that failed are skipped; their errors are in plan.Err. With diff
// set, each entry is followed by a unified diff.
func WriteReport(w io.Writer, plan *RewritePlan, dryRun, diff bool) error {
	verb := "Replaced"
	if dryRun {
		verb = "Would replace"
	}
	for _, c := range plan.Changes {
		if c.Outcome != OutcomeMatched {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s line %d in %s\n  - %s\n  + %s\n", verb, c.Line, c.File.Path, c.OldLine, c.NewLine); err != nil {
			return err
		}
		if !diff {
			continue
		}
		d, err := c.Diff()
		if err != nil {
			return fmt.Errorf("diffing %s: %w", c.File.Path, err)
		}
		if _, err := io.WriteString(w, d); err != nil {
			return err
		}
	}
	return nil
}
