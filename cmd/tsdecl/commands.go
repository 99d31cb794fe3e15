package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/julianjensen/inference/internal/pipeline"
)

// addCompileCommands adds compile and check.
func (app *App) addCompileCommands(rootCmd *cobra.Command) {
	var isolated bool
	compileCmd := &cobra.Command{
		Use:   "compile <file>...",
		Short: "Compile declaration files and print the result",
		Long: `Compile one or more declaration files (.json, .yaml or .yml) and print the
compiled declarations. Declarations that fail are reported and skipped; the
command exits non-zero if any failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed []string
			for _, path := range args {
				var err error
				if isolated {
					err = app.runIsolated(cmd, path)
				} else {
					ctx := app.compileFile(path)
					fmt.Fprint(app.out, ctx.Output)
					err = app.report(ctx)
				}
				if err != nil {
					failed = append(failed, err.Error())
				}
			}
			if len(failed) > 0 {
				return errors.New(strings.Join(failed, "; "))
			}
			return nil
		},
	}
	compileCmd.Flags().BoolVar(&isolated, "isolated", false, "Compile each declaration in its own universe, in parallel")

	var golden string
	var update bool
	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Compare compiled output with a golden file",
		Long: `Compile a declaration file and compare the printed result with a golden file.
Exits non-zero and prints a diff when they differ. With --update the golden
file is rewritten instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if golden == "" {
				golden = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".golden"
			}
			ctx := app.compileFile(args[0])
			if err := app.report(ctx); err != nil {
				return err
			}
			if update {
				if err := os.WriteFile(golden, []byte(ctx.Output), 0o644); err != nil {
					return errors.Errorf("writing golden file %s: %w", golden, err)
				}
				fmt.Fprintf(app.out, "updated %s\n", golden)
				return nil
			}
			want, err := os.ReadFile(golden)
			if err != nil {
				return errors.Errorf("reading golden file %s: %w", golden, err)
			}
			if string(want) == ctx.Output {
				fmt.Fprintf(app.out, "ok %s\n", args[0])
				return nil
			}
			app.showDiff(string(want), ctx.Output)
			return errors.Errorf("%s: output differs from %s", args[0], golden)
		},
	}
	checkCmd.Flags().StringVar(&golden, "golden", "", "Golden file [default: <file> with a .golden extension]")
	checkCmd.Flags().BoolVar(&update, "update", false, "Rewrite the golden file with the current output")

	rootCmd.AddCommand(compileCmd, checkCmd)
}

// runIsolated loads path, then compiles every declaration on its own.
func (app *App) runIsolated(cmd *cobra.Command, path string) error {
	loaded := pipeline.New(&pipeline.LoadProcessor{}).Run(pipeline.NewFileContext(path, app.cfg))
	if err := app.report(loaded); err != nil {
		return err
	}
	ctxs, err := pipeline.CompileIsolated(cmd.Context(), loaded.Declarations, app.cfg, app.newPipeline)
	if err != nil {
		return errors.Errorf("%s: %w", path, err)
	}
	var errs int
	for _, ctx := range ctxs {
		ctx.FilePath = path
		fmt.Fprint(app.out, ctx.Output)
		if app.report(ctx) != nil {
			errs++
		}
	}
	if errs > 0 {
		return errors.Errorf("%s: %d declaration(s) failed", path, errs)
	}
	return nil
}

// addVersionCommand adds the version command.
func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(app.out, "tsdecl %s\n", version)
		},
	})
}
