// Package migrations embeds the SQL schema so the migrate tool ships without a
// separate migrations directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
