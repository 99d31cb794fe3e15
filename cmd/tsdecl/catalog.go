package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/julianjensen/inference/internal/catalog"
)

const defaultCatalog = "tsdecl.db"

// addCatalogCommands adds the catalog command group.
func (app *App) addCatalogCommands(rootCmd *cobra.Command) {
	var dbPath string
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store compiled type graphs in a SQLite catalog",
	}
	catalogCmd.PersistentFlags().StringVar(&dbPath, "db", defaultCatalog, "Catalog database file")

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Compile a declaration file and export it as a new unit",
		Long: `Compile a declaration file and write its types, members, signatures and
global bindings to the catalog. Prints the new unit ID. Nothing is exported
if any declaration fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.compileFile(args[0])
			if err := app.report(ctx); err != nil {
				return err
			}
			cat, err := catalog.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			id, err := cat.Export(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, id)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List exported units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			units, err := cat.Units(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range units {
				fmt.Fprintf(app.out, "%s\t%s\t%s\n", u.ID, u.Created.Format(time.RFC3339), u.Source)
			}
			return nil
		},
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup <unit> <name>",
		Short: "Print the rendering of a global name in a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := uuid.Parse(args[0])
			if err != nil {
				return errors.Errorf("invalid unit id %q: %w", args[0], err)
			}
			cat, err := catalog.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			rendered, err := cat.Lookup(cmd.Context(), unit, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, rendered)
			return nil
		},
	}

	catalogCmd.AddCommand(exportCmd, listCmd, lookupCmd)
	rootCmd.AddCommand(catalogCmd)
}
