// Package platform provides the filesystem primitives behind asset linking:
// creating directory symlinks, reading their targets back and classifying
// what currently occupies a link path. EnsureSymlink layers idempotent
// "ensure-link" semantics on top of os.Symlink.
package platform
