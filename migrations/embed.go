// Package migrations embeds the goose SQL migrations for the question bank schema.
package migrations

import "embed"

// FS holds every *.sql migration, ordered by goose's numeric prefix.
//
//go:embed *.sql
var FS embed.FS
