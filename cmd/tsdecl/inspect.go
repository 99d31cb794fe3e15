package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/ext"
)

// addInspectCommands adds the commands that produce declarations from Go
// packages, proto files and tsdecl-ext.yaml.
func (app *App) addInspectCommands(rootCmd *cobra.Command) {
	var records bool

	var dir string
	goCmd := &cobra.Command{
		Use:   "inspect-go <pattern>...",
		Short: "Print the exported API of Go packages as declarations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			pkgs, err := ext.LoadGoPackages(dir, args...)
			if err != nil {
				return err
			}
			var defs []*decl.Declaration
			for _, pkg := range pkgs {
				d, err := ext.InspectGoPackage(pkg.Types)
				if err != nil {
					return err
				}
				defs = append(defs, d...)
			}
			return app.emit(strings.Join(args, " "), defs, records)
		},
	}
	goCmd.Flags().StringVar(&dir, "dir", ".", "Directory patterns are resolved from")

	var importPaths []string
	protoCmd := &cobra.Command{
		Use:   "inspect-proto <file>...",
		Short: "Print the messages, enums and services of proto files as declarations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fds, err := ext.ParseProtoFiles(importPaths, args...)
			if err != nil {
				return err
			}
			defs, err := ext.InspectProto(fds...)
			if err != nil {
				return err
			}
			return app.emit(strings.Join(args, " "), defs, records)
		},
	}
	protoCmd.Flags().StringSliceVarP(&importPaths, "import-path", "I", []string{"."}, "Proto include directory")

	extCmd := &cobra.Command{
		Use:   "ext [dir]",
		Short: "Inspect every source listed in " + ext.ConfigFileName,
		Long: `Find ` + ext.ConfigFileName + ` in dir (default: the current directory) or one of
its parents, inspect each listed Go package or proto file set, and print the
combined declarations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			start := "."
			if len(args) == 1 {
				start = args[0]
			}
			path, err := ext.FindConfig(start)
			if err != nil {
				return err
			}
			if path == "" {
				return errors.Errorf("no %s found from %s", ext.ConfigFileName, start)
			}
			cfg, err := ext.LoadConfig(path)
			if err != nil {
				return err
			}
			defs, err := ext.Inspect(cfg)
			if err != nil {
				return err
			}
			return app.emit(path, defs, records)
		},
	}

	for _, cmd := range []*cobra.Command{goCmd, protoCmd, extCmd} {
		cmd.Flags().BoolVar(&records, "records", false, "Print the declaration records as JSON instead of compiling them")
		rootCmd.AddCommand(cmd)
	}
}

// emit prints defs either as JSON records or compiled.
func (app *App) emit(source string, defs []*decl.Declaration, records bool) error {
	if records {
		enc := json.NewEncoder(app.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(defs); err != nil {
			return errors.Wrap(err, "encoding records")
		}
		return nil
	}
	ctx := app.compileDecls(source, defs)
	fmt.Fprint(app.out, ctx.Output)
	return app.report(ctx)
}
