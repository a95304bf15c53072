// Package commands implements the CLI commands for explorer.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/cdolfi/explorer/internal/build"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for explorer.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Serve(ctx context.Context) error
	RunWorker(ctx context.Context) error
	WorkerStatus(ctx context.Context) (*ports.WorkerStatus, error)
	StopWorker(ctx context.Context) error
	RenderOnce(ctx context.Context, id domain.VizID, repos domain.RepoSet, params domain.VizParams) (domain.Rendered, error)
	CacheClear(ctx context.Context, q domain.QueryID, repos domain.RepoSet) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "explorer",
		Short:         "Dashboard backend for open source project activity",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newWorkerCmd())
	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
