// Package migrations holds the PostgreSQL schema for the save store.
package migrations

import "embed"

// FS contains the golang-migrate files for the postgres save driver.
//
//go:embed *.sql
var FS embed.FS
