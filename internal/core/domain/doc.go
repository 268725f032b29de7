// Package domain defines the core business entities for sifter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A searchable item with named text fields
//   - RankedResult: A record placed in the ranked order of one search
//   - Span: A highlighted region of a text
//   - PageLayout: The page numbers and ellipses shown for a result set
//   - Settings: Engine configuration (fields, weights, thresholds)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
