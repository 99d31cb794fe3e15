// Package analyzer compiles declaration records into the type graph.
package analyzer

import (
	"github.com/charmbracelet/log"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/logger"
	"github.com/julianjensen/inference/internal/symbols"
	"github.com/julianjensen/inference/internal/typesystem"
)

// Compiler turns declaration records into types of one Universe. The active
// scope is passed to every call; the Compiler itself holds no current scope.
type Compiler struct {
	u    *typesystem.Universe
	tree *symbols.Tree
	cfg  *config.Config
	log  *log.Logger
}

// New creates a compiler writing into tree. A nil cfg means defaults.
func New(tree *symbols.Tree, cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Compiler{
		u:    tree.Universe(),
		tree: tree,
		cfg:  cfg,
		log:  logger.NewComponentLogger("analyzer"),
	}
}

// Universe returns the arena the compiler allocates in.
func (c *Compiler) Universe() *typesystem.Universe { return c.u }

// Global returns the root scope of the compiler's tree.
func (c *Compiler) Global() *symbols.SymbolTable { return c.tree.Global() }

// Compile creates every declaration in scope, stopping at the first error.
func (c *Compiler) Compile(defs []*decl.Declaration, scope *symbols.SymbolTable) ([]typesystem.Type, error) {
	out := make([]typesystem.Type, 0, len(defs))
	for _, d := range defs {
		t, err := c.CreateType(d, scope)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}
