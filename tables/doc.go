// Package tables detects tabular data on PDF pages from text geometry
// alone, without relying on drawn gridlines.
//
// # Detectors
//
// Detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [GeometricDetector] - whitespace and alignment analysis of text
//     fragment positions
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("geometric")
//	found, err := detector.Detect(pageNum, rows)
//
// # Geometric Detection
//
// The [GeometricDetector] consumes the fragment rows produced by the
// reader (text chunks split at column-sized gaps) and applies:
//
//  1. Vertical clustering of rows into contiguous blocks
//  2. Column boundary extraction by clustering fragment left edges
//  3. Support filtering: a column must recur across enough rows
//  4. Row filtering: a row must align with enough columns
//  5. Cell assignment by nearest column boundary
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	detector.Configure(config)
package tables
