// Package store defines the persistence layer of the study app: a small
// key-value abstraction over durable local storage and the typed deck records
// kept in it. Backends live under internal/platform.
package store
