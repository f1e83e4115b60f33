// Package db embeds the goose migrations so binaries do not depend on the working directory.
package db

import "embed"

// Migrations holds db/migrations/*.sql; goose reads them from the "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations passed to goose.Up.
const MigrationsDir = "migrations"
