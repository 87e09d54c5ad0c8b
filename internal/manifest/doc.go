// Package manifest handles parsing and validation of the project manifest,
// assetkit.yaml. The manifest declares the asset layout the build commands
// operate on: which symlinks to maintain, which files to minify and which
// stylesheets to compile. Files are validated against an embedded JSON
// Schema before they are decoded. Projects without a manifest get Default(),
// which mirrors the historical hardcoded layout.
package manifest
