// Package minify drives an external (or embedded) minifier over the source
// files of each manifest category. It enumerates each category's glob,
// skips files that are already minified output, derives the sibling
// ".min" output path and invokes the minifier once per remaining file,
// strictly in sequence. Every invocation's result is collected into a
// Report so callers can decide how to surface failures.
package minify
