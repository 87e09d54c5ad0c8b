// Package toolexec runs external command-line tools (the minifier and the
// CSS compiler) and reports their exit status and captured output instead of
// discarding them. Runner is the seam the build drivers depend on, so tests
// can substitute a recording fake for real processes.
package toolexec
