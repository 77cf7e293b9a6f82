// Package db expone las migraciones SQL embebidas en el binario.
package db

import "embed"

// Migrations contiene db/migrations/*.sql (formato golang-migrate).
//
//go:embed migrations/*.sql
var Migrations embed.FS
