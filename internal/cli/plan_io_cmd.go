package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/lessonplan/internal/cli/formatter"
	"github.com/alexanderramin/lessonplan/internal/exchange"
	"github.com/spf13/cobra"
)

// outputWriter returns the file at path, or the command's stdout when path is empty.
func outputWriter(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func newPlanExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export PLAN",
		Short: "Export a plan as JSON or plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if format != "json" && format != "text" {
				return fmt.Errorf("invalid format %q (want json or text)", format)
			}
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Plans.View(cmd.Context(), id)
			if err != nil {
				return err
			}

			w, closeFn, err := outputWriter(cmd, out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); err == nil {
					err = cerr
				}
			}()

			if format == "text" {
				_, err = fmt.Fprintln(w, exchange.FormatScheduleText(view.Schedule))
				return err
			}
			return exchange.WritePlanDocument(w, exchange.FromPlan(view.Plan))
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := exchange.LoadPlanDocument(args[0])
			if err != nil {
				return err
			}
			if err := exchange.AsError(exchange.ValidatePlanDocument(doc)); err != nil {
				return err
			}
			p, err := app.Plans.Import(cmd.Context(), exchange.ToPlan(doc))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported plan %s with %d exercises %s\n",
				p.Title, len(p.Items), formatter.TruncID(p.ID))
			return nil
		},
	}
}
