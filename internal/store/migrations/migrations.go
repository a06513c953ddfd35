// Package migrations embeds the PostgreSQL schema migrations of the product store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
