// Package linker maintains the directory symlinks that let the hidden asset
// trees reference the canonical embed/js trees without duplicating files.
// Prepare applies ensure-link semantics to every configured link in order;
// Status reports what currently occupies each link path.
package linker
