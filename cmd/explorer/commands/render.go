package commands

import (
	"encoding/json"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <visualization>",
		Short: "Render one visualization and print its chart as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, _ := cmd.Flags().GetStringSlice("repo")
			threshold, _ := cmd.Flags().GetInt("threshold")
			exclude, _ := cmd.Flags().GetStringSlice("exclude")
			startRaw, _ := cmd.Flags().GetString("start")
			endRaw, _ := cmd.Flags().GetString("end")

			start, err := domain.ParseDate(startRaw)
			if err != nil {
				return err
			}
			end, err := domain.ParseDate(endRaw)
			if err != nil {
				return err
			}

			params := domain.VizParams{
				Threshold: threshold,
				Dates:     domain.DateRange{Start: start, End: end},
			}
			for _, e := range exclude {
				params.Exclusions = append(params.Exclusions, domain.Exclusion(e))
			}

			rendered, err := c.app.RenderOnce(cmd.Context(), domain.VizID(args[0]), domain.NewRepoSet(repos...), params)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(rendered)
		},
	}

	cmd.Flags().StringSliceP("repo", "r", nil, "Repository ID (repeatable or comma-separated)")
	cmd.Flags().IntP("threshold", "t", domain.DefaultThreshold, "Group labels with at most this many occurrences into Other")
	cmd.Flags().StringSliceP("exclude", "x", nil, "Exclude a label: gmail or other")
	cmd.Flags().String("start", "", "Earliest date to include (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Latest date to include (YYYY-MM-DD)")

	return cmd
}
