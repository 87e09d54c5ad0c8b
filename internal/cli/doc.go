// Package cli defines the Cobra command tree for the assetkit CLI. Each file
// in this package registers one top-level command (link, minify, style, etc.)
// with the root command. Commands resolve the project and settings once and
// delegate to internal packages for the actual work.
package cli
