// Package doctor runs diagnostic checks for an asset project: whether the
// external tools are installed and recent enough, whether the hidden-asset
// links are intact and whether the manifest validates. Each check writes
// "[ OK ]"/"[MISS]"/"[FAIL]" lines to a writer and returns an error only
// when the check itself could not run.
package doctor
