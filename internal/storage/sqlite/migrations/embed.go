package migrations

import "embed"

// FS contains the golang-migrate files for the sqlite save driver.
//
//go:embed *.sql
var FS embed.FS
