package commands

import (
	"fmt"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/ui/output"
	"github.com/cdolfi/explorer/internal/ui/style"
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.newCacheClearCmd())

	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <query>",
		Short: "Remove the cached result of a query for a repository set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, _ := cmd.Flags().GetStringSlice("repo")
			if err := c.app.CacheClear(cmd.Context(), domain.QueryID(args[0]), domain.NewRepoSet(repos...)); err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())
			_, _ = fmt.Fprintf(out, "%s cleared %s\n", out.String(style.Check).Foreground(out.Color(string(style.Green))), args[0])
			return nil
		},
	}

	cmd.Flags().StringSliceP("repo", "r", nil, "Repository ID (repeatable or comma-separated)")

	return cmd
}
