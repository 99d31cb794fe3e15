package analyzer

import (
	"github.com/julianjensen/inference/internal/pipeline"
)

// AnalyzerProcessor compiles the context's declarations into its Tree. Each
// top-level declaration is compiled on its own: a failure is recorded on the
// context and the next declaration still compiles.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Declarations) == 0 {
		return ctx
	}
	c := New(ctx.Tree, ctx.Config)
	global := ctx.Tree.Global()

	for _, d := range ctx.Declarations {
		t, err := c.CreateType(d, global)
		if err != nil {
			c.log.Debug("declaration failed", "name", d.Name, "err", err)
			ctx.Fail(d, err)
			continue
		}
		ctx.Results = append(ctx.Results, &pipeline.Result{Name: d.Name, Kind: d.Kind, Type: t})
	}
	return ctx
}
