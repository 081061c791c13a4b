// Package migrations embeds the kv schema migrations, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
