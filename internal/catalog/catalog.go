// Package catalog stores compiled type graphs in SQLite so renderings can be
// queried without recompiling.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"
	_ "modernc.org/sqlite"

	"github.com/julianjensen/inference/internal/logger"
	"github.com/julianjensen/inference/internal/pipeline"
	"github.com/julianjensen/inference/internal/typesystem"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// ErrNotFound is returned by Lookup for names that were not exported.
var ErrNotFound = errors.New("catalog: name not found")

const schema = `
CREATE TABLE IF NOT EXISTS units (
	id      TEXT PRIMARY KEY,
	source  TEXT NOT NULL,
	created TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS types (
	unit     TEXT NOT NULL REFERENCES units(id),
	id       INTEGER NOT NULL,
	variant  TEXT NOT NULL,
	name     TEXT NOT NULL,
	rendered TEXT NOT NULL,
	scope    INTEGER NOT NULL,
	PRIMARY KEY (unit, id)
);
CREATE TABLE IF NOT EXISTS bindings (
	unit     TEXT NOT NULL REFERENCES units(id),
	name     TEXT NOT NULL,
	type     INTEGER NOT NULL,
	rendered TEXT NOT NULL,
	PRIMARY KEY (unit, name)
);
CREATE TABLE IF NOT EXISTS members (
	unit  TEXT NOT NULL REFERENCES units(id),
	owner INTEGER NOT NULL,
	name  TEXT NOT NULL,
	type  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS signatures (
	unit     TEXT NOT NULL REFERENCES units(id),
	id       INTEGER NOT NULL,
	callable INTEGER NOT NULL,
	ordinal  INTEGER NOT NULL,
	rendered TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS parameters (
	unit      TEXT NOT NULL REFERENCES units(id),
	signature INTEGER NOT NULL,
	ordinal   INTEGER NOT NULL,
	name      TEXT NOT NULL,
	type      INTEGER NOT NULL,
	optional  INTEGER NOT NULL,
	rest      INTEGER NOT NULL
);
`

// Unit is one exported compilation.
type Unit struct {
	ID      uuid.UUID
	Source  string
	Created time.Time
}

// Catalog is an open SQLite catalog.
type Catalog struct {
	db  *sql.DB
	log *log.Logger
}

// Open opens (creating if needed) the catalog at path. ":memory:" gives a
// private in-memory catalog.
func Open(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, errors.Errorf("opening catalog %s: %w", path, err)
	}
	// One connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Errorf("creating catalog schema: %w", err)
	}
	return &Catalog{db: db, log: logger.NewComponentLogger("catalog")}, nil
}

// Close releases the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// DB exposes the underlying handle for ad-hoc queries.
func (c *Catalog) DB() *sql.DB {
	return c.db
}

// Export writes the Universe and global bindings of unit in one transaction
// and returns the new unit ID.
func (c *Catalog) Export(ctx context.Context, unit *pipeline.PipelineContext) (uuid.UUID, error) {
	if unit == nil || unit.Universe == nil || unit.Tree == nil {
		return uuid.Nil, errors.New("catalog: nothing compiled to export")
	}
	id := uuid.New()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "starting export")
	}
	defer func() { _ = tx.Rollback() }()

	w := &writer{ctx: ctx, tx: tx, unit: id.String()}
	source := unit.FilePath
	if source == "" {
		source = "<memory>"
	}
	w.exec(`INSERT INTO units (id, source, created) VALUES (?, ?, ?)`,
		w.unit, source, time.Now().UTC().Format(time.RFC3339Nano))

	for t := range unit.Universe.All() {
		w.exportType(t)
	}
	tree := unit.Tree
	for name, t := range tree.Global().All() {
		if tree.IsBuiltin(t) {
			continue
		}
		w.exec(`INSERT INTO bindings (unit, name, type, rendered) VALUES (?, ?, ?, ?)`,
			w.unit, name, int64(t.ID()), typesystem.RenderEntry(name, t))
	}
	if w.err != nil {
		return uuid.Nil, w.err
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, errors.Wrap(err, "committing export")
	}
	c.log.Debug("exported unit", "unit", id, "source", source, "types", unit.Universe.Len())
	return id, nil
}

// Lookup returns the rendering of a global name in unit.
func (c *Catalog) Lookup(ctx context.Context, unit uuid.UUID, name string) (string, error) {
	var rendered string
	err := c.db.QueryRowContext(ctx,
		`SELECT rendered FROM bindings WHERE unit = ? AND name = ?`, unit.String(), name).Scan(&rendered)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.Errorf("%w: %s in unit %s", ErrNotFound, name, unit)
	}
	if err != nil {
		return "", errors.Wrap(err, "looking up binding")
	}
	return rendered, nil
}

// Units lists the exported units, oldest first.
func (c *Catalog) Units(ctx context.Context) ([]Unit, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, source, created FROM units ORDER BY created, rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "listing units")
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var id, source, created string
		if err := rows.Scan(&id, &source, &created); err != nil {
			return nil, errors.Wrap(err, "scanning unit")
		}
		u := Unit{Source: source}
		if u.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Wrap(err, "parsing unit id")
		}
		if u.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, errors.Wrap(err, "parsing unit time")
		}
		out = append(out, u)
	}
	return out, errors.Wrap(rows.Err(), "listing units")
}

// writer keeps the first error of a run of inserts.
type writer struct {
	ctx  context.Context
	tx   *sql.Tx
	unit string
	err  error
}

func (w *writer) exec(query string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := w.tx.ExecContext(w.ctx, query, args...); err != nil {
		w.err = errors.Errorf("catalog insert: %w", err)
	}
}

func (w *writer) exportType(t typesystem.Type) {
	w.exec(`INSERT INTO types (unit, id, variant, name, rendered, scope) VALUES (?, ?, ?, ?, ?, ?)`,
		w.unit, int64(t.ID()), t.Variant().String(), t.Name(), t.String(), int64(t.Outer()))

	switch v := t.(type) {
	case *typesystem.ObjectType:
		v.EachMember(func(name string, m typesystem.Type) bool {
			w.exec(`INSERT INTO members (unit, owner, name, type) VALUES (?, ?, ?, ?)`,
				w.unit, int64(v.ID()), name, int64(m.ID()))
			return w.err == nil
		})
	case *typesystem.CallableType:
		for i, s := range v.Signatures() {
			w.exec(`INSERT INTO signatures (unit, id, callable, ordinal, rendered) VALUES (?, ?, ?, ?, ?)`,
				w.unit, int64(s.ID()), int64(v.ID()), i, s.String())
			for j, p := range s.Parameters() {
				w.exec(`INSERT INTO parameters (unit, signature, ordinal, name, type, optional, rest) VALUES (?, ?, ?, ?, ?, ?, ?)`,
					w.unit, int64(s.ID()), j, p.Name(), int64(typeID(p.Type())), p.Optional(), p.Rest())
			}
		}
	}
}

func typeID(t typesystem.Type) typesystem.TypeID {
	if t == nil {
		return typesystem.NoType
	}
	return t.ID()
}
