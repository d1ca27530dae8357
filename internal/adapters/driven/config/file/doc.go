// Package file provides the TOML-backed ConfigStore adapter.
// Settings such as the Readwise page size and the notes target live in
// ~/.marginalia/config.toml; nested tables flatten to dot-notation keys.
package file
