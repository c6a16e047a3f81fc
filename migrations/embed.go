package migrations

import "embed"

// Files holds the schema for users, sites, site access grants and shifts.
// Versions are applied in numeric order and never edited once released.
//
//go:embed *.sql
var Files embed.FS
