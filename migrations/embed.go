// Package migrations embeds the SQL schema applied by db.OpenSQLite.
package migrations

import "embed"

// Files holds the forward-only migrations. They run in file name order and
// each version is recorded in schema_migrations.
//
//go:embed *.sql
var Files embed.FS
