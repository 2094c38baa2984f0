package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/report"
)

func newResultsCommand(load AppLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List and render stored assessment results",
	}
	cmd.AddCommand(newResultsListCommand(load))
	cmd.AddCommand(newResultsShowCommand(load))
	return cmd
}

func newResultsListCommand(load AppLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List result summaries in submission order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			summaries, err := app.AssessmentService.Summaries(cmd.Context())
			if err != nil {
				return fmt.Errorf("list results: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No results stored.")
				return nil
			}
			printSummaries(out, summaries, isTerminal(out))
			return nil
		},
	}
}

// printSummaries writes an aligned table; scores are coloured by band.
func printSummaries(w io.Writer, summaries []assessments.Summary, colorOutput bool) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	if !colorOutput {
		for _, c := range []*color.Color{bold, green, yellow, red} {
			c.DisableColor()
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, bold.Sprint("ID")+"\t"+bold.Sprint("SUBMITTED")+"\t"+bold.Sprint("ORGANIZATION")+"\t"+bold.Sprint("SCORE")+"\t"+bold.Sprint("MATURITY"))
	for _, s := range summaries {
		band := red
		switch {
		case s.OverallScore >= 3.5:
			band = green
		case s.OverallScore >= 2.5:
			band = yellow
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.SubmittedAt, s.OrganizationName, band.Sprintf("%.1f", s.OverallScore), s.MaturityLevel)
	}
	_ = tw.Flush()
}

func newResultsShowCommand(load AppLoader) *cobra.Command {
	var (
		style string
		width int
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render one result as a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.AssessmentService.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("result %s: %w", args[0], err)
			}
			in := app.AssessmentService.ReportInput(cmd.Context(), res)
			out := cmd.OutOrStdout()

			if raw {
				md, err := report.Markdown(in)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, md)
				return err
			}
			if style == "" && !isTerminal(out) {
				style = "notty"
			}
			rendered, err := report.Terminal(in, style, width)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "glamour style (dark, light, notty); auto-detected when empty")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	cmd.Flags().BoolVar(&raw, "markdown", false, "print the Markdown source instead of rendering it")
	return cmd
}
