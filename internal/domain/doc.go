// Package domain contains the study entities: decks, their flashcards and
// their multiple-choice questions, plus the functions that turn untyped deck
// documents into validated values. Everything outside this package works on
// the typed values only.
package domain
