package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hrmaturity-backend/internal/catalog"
)

func newCatalogCommand(load AppLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the question catalog",
	}
	cmd.AddCommand(newCatalogExportCommand(load))
	cmd.AddCommand(newCatalogValidateCommand())
	return cmd
}

func newCatalogExportCommand(load AppLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			c, err := app.CatalogService.Catalog(cmd.Context())
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	}
}

func newCatalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog document before uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var c catalog.Catalog
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			if err := catalog.Validate(c); err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			if !isTerminal(cmd.OutOrStdout()) {
				green.DisableColor()
			}
			green.Fprintf(cmd.OutOrStdout(), "ok: %d categories, %d questions\n", len(c.Categories), c.QuestionCount())
			return nil
		},
	}
}
