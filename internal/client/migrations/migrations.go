// Package migrations embeds the SQLite schema of the CLI preferences store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
