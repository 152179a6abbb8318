// Package migrations embeds SQL migration files into the binary, so
// WardCall can migrate its schema without the SQL files being present
// on the filesystem.
package migrations

import (
	"embed"

	"github.com/wardlink/wardcall-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
