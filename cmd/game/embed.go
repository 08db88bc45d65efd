package main

import "embed"

// configFS holds the bundled tuning and levels, used when --config is not set
//
//go:embed configs
var configFS embed.FS
