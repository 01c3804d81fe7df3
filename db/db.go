package db

import "embed"

// Migrations holds one directory of ordered .sql files per dialect.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

// SeedFiles holds the sample tenant used by scripts/db_init -seed.
//
//go:embed seed/*.yaml
var SeedFiles embed.FS
