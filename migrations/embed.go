// Package migrations embeds the MongoDB command migrations applied at startup
// and by cmd/migrate.
package migrations

import "embed"

// FS holds the *.up.json and *.down.json migration files.
//
//go:embed *.json
var FS embed.FS
