// Package migrations содержит SQL миграции goose для поддерживаемых СУБД
package migrations

import "embed"

// FS содержит каталоги sqlite/ и postgres/
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
