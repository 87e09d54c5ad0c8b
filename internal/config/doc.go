// Package config manages user-level settings stored at ~/.assetkit/config.yaml
// and their environment overrides (ASSETKIT_*, plus MINIFY). Commands call
// Resolve once at startup and pass the resulting Settings down explicitly;
// nothing below the command layer reads the environment.
package config
