// Package migrations compiles the SQL schema files into the binary so a
// fresh deployment needs no migration assets on disk.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
