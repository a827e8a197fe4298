// Package migrations embeds the SQL schema files into the binary so the
// server can migrate its database without files on disk.
package migrations

import (
	"embed"

	"github.com/avoronkov/hostwarden/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // files are at the root of the embedded FS
}
