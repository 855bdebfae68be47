package migrations

import "embed"

// Files holds the forward-only schema migrations applied on startup in version order.
//
//go:embed *.sql
var Files embed.FS
