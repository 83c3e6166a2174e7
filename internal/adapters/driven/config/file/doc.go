// Package file provides the TOML-backed configuration store. Settings
// live in config.toml under the sanara config directory; nested tables
// flatten to dot-notation keys, and LoadSettings builds the typed view
// the CLI assembles the pipeline from.
package file
