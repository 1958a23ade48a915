// Package linkshield holds assets embedded into the binary.
package linkshield

import "embed"

// Migrations contains the SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
