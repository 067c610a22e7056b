// Package sqlite implements store.KV on a single-file SQLite database using
// the pure-Go modernc.org/sqlite driver. The schema is managed with goose
// migrations embedded in the binary.
package sqlite
