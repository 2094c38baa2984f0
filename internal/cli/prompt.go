package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/assessments"
)

func newPromptCommand(load AppLoader) *cobra.Command {
	var (
		runIt   bool
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "prompt <submission.json>",
		Short: "Print the analysis prompt for a submission, or run it without storing a result",
		Long: `Build the analysis prompt for a submission file shaped like the
/submit-assessment request body. With --run the prompt is sent to the
configured completion provider and the resulting analysis is printed.
Nothing is stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var sub assessments.Submission
			if err := json.Unmarshal(data, &sub); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			questions, err := app.CatalogService.Catalog(cmd.Context())
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			prompt, err := analysis.BuildAnalysisPrompt(questions, sub.Answers, sub.Comments)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !runIt {
				_, err = io.WriteString(out, prompt)
				return err
			}

			analyzer := analysis.NewAnalyzer(app.Provider, app.Config.Completion.Model, app.Fallbacks)
			outcome := analyzer.Analyze(cmd.Context(), prompt)
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s %s\n", outcome.Source, outcome.Reason)

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, outcome.Analysis, "", "  "); err != nil {
				return fmt.Errorf("format json: %w", err)
			}
			pretty.WriteByte('\n')
			if outPath != "" {
				if err := os.WriteFile(outPath, pretty.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			_, err = out.Write(pretty.Bytes())
			return err
		},
	}
	cmd.Flags().BoolVar(&runIt, "run", false, "send the prompt to the completion provider")
	cmd.Flags().StringVar(&outPath, "out", "", "also write the analysis JSON to this path")
	return cmd
}
