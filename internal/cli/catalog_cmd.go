package cli

import (
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/exchange"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Import or export the whole stage and exercise catalog",
	}

	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogExportCmd(app),
	)

	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create stages and exercises from a JSON seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := exchange.LoadCatalogDocument(args[0])
			if err != nil {
				return err
			}
			if err := exchange.AsError(exchange.ValidateCatalogDocument(doc)); err != nil {
				return err
			}
			res, err := app.Catalog.ImportStages(cmd.Context(), exchange.ToStages(doc))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stages and %d exercises\n", res.StageCount, res.ExerciseCount)
			return nil
		},
	}
}

func newCatalogExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as a JSON seed file",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			stages, err := app.Catalog.ListStages(cmd.Context())
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

			return exchange.WriteCatalogDocument(w, exchange.FromStages(stages))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}
