// Package assets embeds files shipped inside the ising-runner binary.
package assets

import "embed"

// SampleConfigName is the file name of the embedded sample configuration.
const SampleConfigName = "ising.yaml"

// Files holds the embedded assets.
//
//go:embed ising.yaml
var Files embed.FS
