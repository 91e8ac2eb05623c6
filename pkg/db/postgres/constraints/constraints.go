// Package constraints is the PostgreSQL store of flux-bound constraints.
package constraints

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	apool "github.com/atacflux/atacflux/pkg/conn/db/postgres/pool"
	"github.com/atacflux/atacflux/pkg/db"
)

type pgConstraint struct {
	pool apool.Pool
}

func New(pool apool.Pool) db.ConstraintInterface {
	return &pgConstraint{pool: pool}
}

const columns = `"id", "type", "target", "lower_bound", "upper_bound", "label", "enabled", "bound_type", "target_info"`

func (p *pgConstraint) List(ctx context.Context) (map[string]db.Constraint, error) {
	rows, err := p.pool.Query(
		ctx, `select `+columns+` from "constraint"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]db.Constraint{}
	for rows.Next() {
		con, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out[con.ID] = con
	}
	return out, rows.Err()
}

func (p *pgConstraint) Get(ctx context.Context, id string) (db.Constraint, error) {
	row := p.pool.QueryRow(
		ctx, `select `+columns+` from "constraint" where "id" = $1`, id,
	)
	con, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Constraint{}, db.ErrMissing
	}
	return con, err
}

func (p *pgConstraint) Add(ctx context.Context, con db.Constraint) error {
	_, err := p.pool.Exec(
		ctx,
		`
		insert into "constraint"
			("id", "type", "target", "lower_bound", "upper_bound", "label", "enabled", "bound_type", "target_info")
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		con.ID, con.Type, con.Target, con.Lower, con.Upper,
		con.Label, con.Enabled, con.BoundType, jsonb(con.TargetInfo),
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return db.ErrExists
	}
	return err
}

func (p *pgConstraint) Put(ctx context.Context, con db.Constraint) error {
	return upsert(ctx, p.pool, con)
}

func (p *pgConstraint) PutAll(ctx context.Context, cons []db.Constraint) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, con := range cons {
		if err := upsert(ctx, tx, con); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func upsert(ctx context.Context, q apool.Queryer, con db.Constraint) error {
	_, err := q.Exec(
		ctx,
		`
		insert into "constraint"
			("id", "type", "target", "lower_bound", "upper_bound", "label", "enabled", "bound_type", "target_info")
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		on conflict ("id") do update set
			"type" = excluded."type",
			"target" = excluded."target",
			"lower_bound" = excluded."lower_bound",
			"upper_bound" = excluded."upper_bound",
			"label" = excluded."label",
			"enabled" = excluded."enabled",
			"bound_type" = excluded."bound_type",
			"target_info" = excluded."target_info"
		`,
		con.ID, con.Type, con.Target, con.Lower, con.Upper,
		con.Label, con.Enabled, con.BoundType, jsonb(con.TargetInfo),
	)
	return err
}

func (p *pgConstraint) Remove(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(
		ctx, `delete from "constraint" where "id" = $1`, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}

func (p *pgConstraint) Toggle(ctx context.Context, id string, enabled *bool) (db.Constraint, error) {
	row := p.pool.QueryRow(
		ctx,
		`
		update "constraint"
			set "enabled" = coalesce($2::boolean, not "enabled")
			where "id" = $1
			returning `+columns,
		id, enabled,
	)
	con, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Constraint{}, db.ErrMissing
	}
	return con, err
}

func (p *pgConstraint) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `delete from "constraint"`)
	return err
}

func scan(row pgx.Row) (db.Constraint, error) {
	var con db.Constraint
	var targetInfo pgtype.JSONB
	if err := row.Scan(
		&con.ID, &con.Type, &con.Target, &con.Lower, &con.Upper,
		&con.Label, &con.Enabled, &con.BoundType, &targetInfo,
	); err != nil {
		return db.Constraint{}, err
	}
	if targetInfo.Status == pgtype.Present {
		con.TargetInfo = json.RawMessage(targetInfo.Bytes)
	}
	return con, nil
}

func jsonb(raw json.RawMessage) pgtype.JSONB {
	if raw == nil {
		return pgtype.JSONB{Status: pgtype.Null}
	}
	return pgtype.JSONB{Bytes: raw, Status: pgtype.Present}
}
