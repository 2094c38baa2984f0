// Package cli implements the hrctl operator commands.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"hrmaturity-backend/internal/bootstrap"
	"hrmaturity-backend/internal/shared/config"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// AppLoader builds the services a command needs.
type AppLoader func(ctx context.Context) (*bootstrap.App, error)

// DefaultLoader builds services from the environment.
func DefaultLoader(ctx context.Context) (*bootstrap.App, error) {
	return bootstrap.BuildServices(ctx, config.Load())
}

// NewRootCommand creates the root hrctl command.
func NewRootCommand(load AppLoader) *cobra.Command {
	if load == nil {
		load = DefaultLoader
	}
	cmd := &cobra.Command{
		Use:   "hrctl",
		Short: "Operate the HR maturity assessment backend",
		Long: `hrctl inspects the question catalog and stored assessment results
using the same storage configuration as the API server, and can serve
the questionnaire to MCP clients over stdio.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.AddCommand(newCatalogCommand(load))
	cmd.AddCommand(newResultsCommand(load))
	cmd.AddCommand(newPromptCommand(load))
	cmd.AddCommand(newMCPCommand(load))
	return cmd
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
