// Package mcp provides an MCP (Model Context Protocol) server adapter for Marginalia.
// It lets MCP clients browse, sync, and export Readwise highlights.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
