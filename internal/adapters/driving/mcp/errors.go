// Package mcp provides an MCP (Model Context Protocol) server adapter for Sifter.
// It lets AI assistants run fuzzy searches over the record collection and
// read individual records.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
