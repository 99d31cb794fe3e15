package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianjensen/inference/internal/analyzer"
	"github.com/julianjensen/inference/internal/pipeline"
)

const src = `[
  {"name": "Point", "decls": [{"kind": "InterfaceDeclaration", "members": [
    {"name": "x", "decls": [{"kind": "PropertySignature", "type": "number"}]},
    {"name": "New", "decls": [{"kind": "ConstructSignature",
      "parameters": [{"name": "x", "type": "number"}, {"name": "rest", "type": "any", "rest": true}]}]}
  ]}]},
  {"name": "parseInt", "decls": [{"kind": "FunctionDeclaration",
    "parameters": [{"name": "s", "type": "string"}, {"name": "radix", "type": "number", "optional": true}], "type": "number"}]}
]`

func compile(t *testing.T) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.New(
		&pipeline.LoadProcessor{},
		&pipeline.MassageProcessor{},
		&analyzer.AnalyzerProcessor{},
	).Run(pipeline.NewPipelineContext(src))
	require.NoError(t, ctx.Err())
	return ctx
}

func openTest(t *testing.T, path string) *Catalog {
	t.Helper()
	c, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestExportAndLookup(t *testing.T) {
	ctx := context.Background()
	c := openTest(t, ":memory:")

	unit, err := c.Export(ctx, compile(t))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, unit)

	tests := []struct {
		name string
		want string
	}{
		{"Point", "interface Point { x: number; new(x: number, ...rest: any[]) }"},
		{"parseInt", "parseInt(s: string, radix?: number): number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(ctx, unit, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = c.Lookup(ctx, unit, "Array")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Lookup(ctx, uuid.New(), "Point")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportWritesGraphTables(t *testing.T) {
	ctx := context.Background()
	c := openTest(t, ":memory:")
	unit, err := c.Export(ctx, compile(t))
	require.NoError(t, err)

	count := func(query string) int {
		var n int
		require.NoError(t, c.DB().QueryRowContext(ctx, query, unit.String()).Scan(&n))
		return n
	}
	assert.Equal(t, 2, count(`SELECT COUNT(*) FROM bindings WHERE unit = ?`))
	assert.Equal(t, 1, count(`SELECT COUNT(*) FROM signatures s JOIN types t ON t.unit = s.unit AND t.id = s.callable WHERE s.unit = ? AND t.name = 'parseInt'`))
	assert.Equal(t, 4, count(`SELECT COUNT(*) FROM parameters WHERE unit = ?`))
	assert.Equal(t, 1, count(`SELECT COUNT(*) FROM parameters WHERE unit = ? AND rest = 1`))

	var optional string
	require.NoError(t, c.DB().QueryRowContext(ctx,
		`SELECT name FROM parameters WHERE unit = ? AND optional = 1`, unit.String()).Scan(&optional))
	assert.Equal(t, "radix", optional)

	var members []string
	rows, err := c.DB().QueryContext(ctx,
		`SELECT m.name FROM members m JOIN types t ON t.unit = m.unit AND t.id = m.owner
		 WHERE m.unit = ? AND t.name = 'Point' ORDER BY m.rowid`, unit.String())
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		members = append(members, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"x", "%new"}, members)
}

func TestUnitsPersistAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	unitA, err := first.Export(ctx, compile(t))
	require.NoError(t, err)
	unitB, err := first.Export(ctx, compile(t))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTest(t, path)
	units, err := second.Units(ctx)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, unitA, units[0].ID)
	assert.Equal(t, unitB, units[1].ID)
	assert.Equal(t, "<memory>", units[0].Source)

	got, err := second.Lookup(ctx, unitB, "parseInt")
	require.NoError(t, err)
	assert.Contains(t, got, "radix?: number")
}

func TestExportNothing(t *testing.T) {
	c := openTest(t, ":memory:")
	_, err := c.Export(context.Background(), &pipeline.PipelineContext{})
	assert.Error(t, err)
}
