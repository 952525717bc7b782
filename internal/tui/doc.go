// Package tui provides the interactive Bubble Tea browser for batch results.
//
// The browser lists one row per request in input order and supports filtering,
// sorting, an errors-only toggle and a detail pane with the full rendered result.
// Rows are prepared by the caller so the browser never evaluates anything itself.
package tui
