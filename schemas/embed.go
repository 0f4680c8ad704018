// Package schemas embeds the JSON Schema files shipped with the scraper.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// ConfigSchema is the file name of the CLI configuration schema.
const ConfigSchema = "config.schema.json"
