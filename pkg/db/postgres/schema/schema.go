// Package schema creates the tables atacflux needs. The schema is
// small enough that plain idempotent DDL beats a migration framework.
package schema

import (
	"context"

	apool "github.com/atacflux/atacflux/pkg/conn/db/postgres/pool"
)

const ddl = `
create table if not exists "constraint" (
	"id" varchar(1024) primary key,
	"type" varchar(64) not null,
	"target" varchar(1024) not null,
	"lower_bound" double precision not null,
	"upper_bound" double precision not null,
	"label" varchar(1024) not null default '',
	"enabled" boolean not null default true,
	"bound_type" varchar(64) not null default '',
	"target_info" jsonb
);
`

// Ensure applies the DDL. Safe to run on every startup.
func Ensure(ctx context.Context, pool apool.Pool) error {
	_, err := pool.Exec(ctx, ddl)
	return err
}
