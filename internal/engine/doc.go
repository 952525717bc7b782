// Package engine combines the ESG calculators behind one configured facade.
//
// An Engine carries the lookup tables loaded from configuration (GWP tables,
// exposure quality grades, frequency-rate thresholds, significance scoring tables
// and the emission factor registry) and injects them into the pure calculators in
// greenops, safety, significance and benchmark. Requests are typed envelopes that
// can be decoded from NDJSON and evaluated one at a time or as a batch.
//
// The calculators never log; the engine logs one debug event per evaluation and
// records Prometheus metrics for every outcome.
package engine
