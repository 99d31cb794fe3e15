package pipeline

import (
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/logger"
)

// LoadProcessor decodes SourceCode, reading FilePath first when it is set.
type LoadProcessor struct{}

func (lp *LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Declarations != nil {
		return ctx
	}
	if ctx.FilePath != "" && ctx.SourceCode == "" {
		format, err := decl.FormatFor(ctx.FilePath)
		if err != nil {
			ctx.AddError(err)
			return ctx
		}
		data, err := os.ReadFile(ctx.FilePath)
		if err != nil {
			ctx.AddError(errors.Wrap(err, "reading declarations"))
			return ctx
		}
		ctx.SourceCode = string(data)
		ctx.Format = format
	}
	if ctx.Format == "" {
		ctx.Format = decl.FormatJSON
	}

	defs, err := decl.Decode([]byte(ctx.SourceCode), ctx.Format)
	if err != nil {
		if ctx.FilePath != "" {
			err = errors.Errorf("%s: %w", ctx.FilePath, err)
		}
		ctx.AddError(err)
		return ctx
	}
	ctx.Declarations = defs
	logger.Debug("declarations loaded", "file", ctx.FilePath, "count", len(defs))
	return ctx
}

// MassageProcessor runs the kind pre-pass one declaration at a time and drops
// declarations that fail it, so the rest still compile.
type MassageProcessor struct{}

func (mp *MassageProcessor) Process(ctx *PipelineContext) *PipelineContext {
	massage := decl.Massage
	if !ctx.Config.IsStrictKinds() {
		massage = decl.MassageLenient
	}
	kept := ctx.Declarations[:0]
	for _, d := range ctx.Declarations {
		if err := massage([]*decl.Declaration{d}); err != nil {
			ctx.Fail(d, err)
			continue
		}
		kept = append(kept, d)
	}
	ctx.Declarations = kept
	return ctx
}
