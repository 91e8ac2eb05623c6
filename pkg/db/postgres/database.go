// Package postgres implements pkg/db on PostgreSQL via pgx.
package postgres

import (
	"context"

	apool "github.com/atacflux/atacflux/pkg/conn/db/postgres/pool"
	"github.com/atacflux/atacflux/pkg/db"
	pgcon "github.com/atacflux/atacflux/pkg/db/postgres/constraints"
	"github.com/atacflux/atacflux/pkg/db/postgres/schema"
)

type pgDatabase struct {
	pool apool.Pool
}

var _ db.Database = &pgDatabase{}

// New connects to uri, ensures the schema and returns the database handle.
func New(ctx context.Context, uri string) (db.Database, error) {
	pool, err := apool.New(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := schema.Ensure(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &pgDatabase{pool: pool}, nil
}

func (d *pgDatabase) Constraints() db.ConstraintInterface {
	return pgcon.New(d.pool)
}

func (d *pgDatabase) Close() error {
	d.pool.Close()
	return nil
}
