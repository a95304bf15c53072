package commands

import (
	"fmt"
	"time"

	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/ui/output"
	"github.com/cdolfi/explorer/internal/ui/style"
	"github.com/spf13/cobra"
)

func (c *CLI) newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a worker consuming the shared job queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.RunWorker(cmd.Context())
		},
	}

	cmd.AddCommand(c.newWorkerStatusCmd())
	cmd.AddCommand(c.newWorkerStopCmd())

	return cmd
}

func (c *CLI) newWorkerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of the local worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.app.WorkerStatus(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd, st)
			return nil
		},
	}
}

func (c *CLI) newWorkerStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the local worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.StopWorker(cmd.Context()); err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())
			_, _ = fmt.Fprintf(out, "%s worker stopping\n", out.String(style.Check).Foreground(out.Color(string(style.Green))))
			return nil
		},
	}
}

func printStatus(cmd *cobra.Command, st *ports.WorkerStatus) {
	out := output.New(cmd.OutOrStdout())
	label := func(s string) string {
		return out.String(s).Foreground(out.Color(string(style.Slate))).String()
	}

	lastActivity := "never"
	if st.LastActivity.Unix() > 0 {
		lastActivity = st.LastActivity.UTC().Format(time.RFC3339)
	}

	_, _ = fmt.Fprintf(out, "%s worker running (pid %d)\n",
		out.String(style.Dot).Foreground(out.Color(string(style.Green))), st.PID)
	_, _ = fmt.Fprintf(out, "  %s %s\n", label("uptime:       "), st.Uptime.Truncate(time.Second))
	_, _ = fmt.Fprintf(out, "  %s %s\n", label("last activity:"), lastActivity)
	_, _ = fmt.Fprintf(out, "  %s %d\n", label("active:       "), st.Active)
	_, _ = fmt.Fprintf(out, "  %s %d\n", label("succeeded:    "), st.Succeeded)
	_, _ = fmt.Fprintf(out, "  %s %d\n", label("failed:       "), st.Failed)
}
