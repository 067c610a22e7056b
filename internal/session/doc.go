// Package session holds the transient state of one study pass over a deck:
// flipping through flashcards or answering a multiple-choice quiz. Sessions
// are plain values owned by the caller; they are never persisted.
package session
