package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
)

// CompileIsolated runs build() once per top-level declaration, in parallel.
// Every run gets its own Universe and scope Tree, so goroutines share no
// mutable state. Contexts are returned in input order.
func CompileIsolated(ctx context.Context, defs []*decl.Declaration, cfg *config.Config, build func() *Pipeline) ([]*PipelineContext, error) {
	out := make([]*PipelineContext, len(defs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, d := range defs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pctx := NewPipelineContextWithConfig("", cfg)
			pctx.Declarations = []*decl.Declaration{d}
			out[i] = build().Run(pctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
