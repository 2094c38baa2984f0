package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"hrmaturity-backend/internal/mcptools"
)

func newMCPCommand(load AppLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the questionnaire tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			s := mcptools.NewServer(app.Config.Version, app.CatalogService, app.AssessmentService)
			return server.ServeStdio(s)
		},
	}
}
