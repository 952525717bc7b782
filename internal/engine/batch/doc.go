// Package batch evaluates many independent calculator requests.
//
// Items are split into fixed-size batches that run concurrently under an
// errgroup limit. Evaluate keeps input order and records an error per item, so
// one malformed record never aborts the rest of a run. Progress is reported
// after each batch for CLI and TUI progress displays.
package batch
