// Package style compiles source stylesheets with the CSS framework compiler
// (the tailwindcss standalone CLI). Whether the output is minified is an
// explicit Options value decided by the caller, never read from the
// environment here.
package style
