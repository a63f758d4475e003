// Package migrations embeds the SQL schema migrations so they can be
// applied by the binary itself and by the integration test suite.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
