// Package migrations embeds the SQL files applied by goose when the local
// store is opened. Goose's version table guarantees each migration runs
// exactly once per database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
