package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	yeyo "github.com/tshauck/yeyo/pkg"
)

func newRenderTagStringCmd(a *app) *cobra.Command {
	return newRenderCmd(a, "render-tag-string", "Print the tag template rendered with the current version", yeyo.RenderTagString)
}

func newRenderCommitStringCmd(a *app) *cobra.Command {
	return newRenderCmd(a, "render-commit-string", "Print the commit template rendered with the current version", yeyo.RenderCommitString)
}

func newRenderCmd(a *app, use, short string, render func(*yeyo.Config) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render(cfg))
			return nil
		},
	}
}
