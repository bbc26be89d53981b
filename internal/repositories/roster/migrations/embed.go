// Package migrations holds the roster SQLite schema
package migrations

import "embed"

// FS contains the embedded migrations, in golang-migrate {version}_{name}.{up|down}.sql form
//
//go:embed *.sql
var FS embed.FS
