package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/julianjensen/inference/internal/analyzer"
	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/logger"
	"github.com/julianjensen/inference/internal/pipeline"
	"github.com/julianjensen/inference/internal/prettyprinter"
)

// App holds the settings shared by every subcommand.
type App struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfg   *config.Config
	color bool
}

// NewApp creates the CLI writing results to out and diagnostics to errOut.
func NewApp(out, errOut io.Writer) *App {
	v := viper.New()
	v.SetEnvPrefix("TSDECL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &App{v: v, out: out, errOut: errOut}
}

// RootCommand creates and configures the root command.
func (app *App) RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tsdecl",
		Short: "Compile declaration records into a type graph",
		Long: `tsdecl reads pre-parsed declaration records (JSON or YAML), compiles them
into a graph of interfaces, aliases, functions and variables, and prints the
result as declaration text.`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to tsdecl.yaml")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.Bool("no-color", false, "Disable colored diff output")
	flags.Int("width", 0, "Line width for printed declarations [default: 100]")
	for _, name := range []string{"config", "log-level", "no-color", "width"} {
		// Lookup cannot fail for flags defined just above.
		_ = app.v.BindPFlag(name, flags.Lookup(name))
	}

	app.addCompileCommands(rootCmd)
	app.addCatalogCommands(rootCmd)
	app.addInspectCommands(rootCmd)
	app.addVersionCommand(rootCmd)
	return rootCmd
}

// setup loads the configuration file and configures logging before any
// subcommand runs.
func (app *App) setup(cmd *cobra.Command, _ []string) error {
	app.cfg = config.Default()
	if path := app.v.GetString("config"); path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		app.cfg = cfg
	}

	level := app.v.GetString("log-level")
	if level == "" {
		level = app.cfg.LogLevel
	}
	if err := logger.Configure(level, "", false); err != nil {
		return errors.Wrap(err, "configuring logger")
	}
	logger.SetOutput(app.errOut)

	app.color = !app.v.GetBool("no-color") && os.Getenv("NO_COLOR") == "" && isTerminal(app.out)
	logger.Debug("configured", "command", cmd.Name(), "config", app.v.GetString("config"), "color", app.color)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (app *App) newPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&pipeline.LoadProcessor{},
		&pipeline.MassageProcessor{},
		&analyzer.AnalyzerProcessor{},
		&prettyprinter.RenderProcessor{Width: app.v.GetInt("width")},
	)
}

// compileFile runs the full pipeline over one declaration file.
func (app *App) compileFile(path string) *pipeline.PipelineContext {
	return app.newPipeline().Run(pipeline.NewFileContext(path, app.cfg))
}

// compileDecls runs the pipeline over declarations produced in memory.
func (app *App) compileDecls(source string, defs []*decl.Declaration) *pipeline.PipelineContext {
	if defs == nil {
		defs = []*decl.Declaration{}
	}
	ctx := pipeline.NewPipelineContextWithConfig("", app.cfg)
	ctx.FilePath = source
	ctx.Declarations = defs
	return app.newPipeline().Run(ctx)
}

// report logs every error of ctx and returns a summary error when there
// were any.
func (app *App) report(ctx *pipeline.PipelineContext) error {
	for _, err := range ctx.Errors {
		logger.Error("compile failed", "file", ctx.FilePath, "error", err)
	}
	if ctx.Failed() {
		return errors.Errorf("%s: %d error(s)", sourceName(ctx), len(ctx.Errors))
	}
	return nil
}

func sourceName(ctx *pipeline.PipelineContext) string {
	if ctx.FilePath == "" {
		return "<memory>"
	}
	return ctx.FilePath
}
