package pipeline

import (
	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/symbols"
	"github.com/julianjensen/inference/internal/typesystem"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Result is the outcome of compiling one top-level declaration.
type Result struct {
	Name string
	Kind string
	Type typesystem.Type
	Err  error
}

// PipelineContext carries one compilation unit through the stages.
type PipelineContext struct {
	FilePath   string
	SourceCode string
	Format     decl.Format
	Config     *config.Config

	Declarations []*decl.Declaration

	// Universe and Tree are owned by this context; nothing else writes to them.
	Universe *typesystem.Universe
	Tree     *symbols.Tree

	Results []*Result
	Output  string
	Errors  []error
}

// NewPipelineContext creates a context for in-memory JSON source with the
// default configuration.
func NewPipelineContext(source string) *PipelineContext {
	return NewPipelineContextWithConfig(source, config.Default())
}

// NewPipelineContextWithConfig creates a context with its own Universe and
// scope Tree. Extra builtins from cfg are pre-declared.
func NewPipelineContextWithConfig(source string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	u := typesystem.NewUniverse()
	return &PipelineContext{
		SourceCode: source,
		Format:     decl.FormatJSON,
		Config:     cfg,
		Universe:   u,
		Tree:       symbols.NewTree(u, cfg.Builtins...),
	}
}

// NewFileContext creates a context that loads its declarations from path.
func NewFileContext(path string, cfg *config.Config) *PipelineContext {
	ctx := NewPipelineContextWithConfig("", cfg)
	ctx.FilePath = path
	return ctx
}

// AddError records a failure that is not tied to one declaration.
func (ctx *PipelineContext) AddError(err error) {
	ctx.Errors = append(ctx.Errors, err)
}

// Fail records a per-declaration failure.
func (ctx *PipelineContext) Fail(d *decl.Declaration, err error) {
	ctx.Results = append(ctx.Results, &Result{Name: d.Name, Kind: d.Kind, Err: err})
	ctx.Errors = append(ctx.Errors, err)
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Err returns the first recorded error, or nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

// Compiled returns the successful results in input order.
func (ctx *PipelineContext) Compiled() []*Result {
	var out []*Result
	for _, r := range ctx.Results {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}
