// Package listview provides a virtual scrolling list for Bubble Tea programs.
//
// Only the rows inside the viewport (plus a small buffer) are rendered, so batch
// results with thousands of rows scroll without delay.
package listview
