package prettyprinter

import (
	"github.com/julianjensen/inference/internal/pipeline"
)

// RenderProcessor prints the successfully compiled declarations of the
// context into ctx.Output, in input order.
type RenderProcessor struct {
	Width int // 0 uses the printer default
}

func (rp *RenderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tree == nil {
		return ctx
	}
	p := NewDeclPrinter()
	if rp.Width > 0 {
		p.SetLineWidth(rp.Width)
	}
	compiled := ctx.Compiled()
	names := make([]string, 0, len(compiled))
	for _, r := range compiled {
		names = append(names, r.Name)
	}
	p.PrintNames(ctx.Tree.Global(), names)
	ctx.Output = p.String()
	return ctx
}
