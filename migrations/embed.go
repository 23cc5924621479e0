// Package migrations embeds the schema so goose can apply it from the migrate
// command and from e2e test setup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
