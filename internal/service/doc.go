// Package service contains the study controller: the single owner of the
// deck catalog, the shuffle preference and the one active study session.
//
// Every delivery mechanism (the local HTTP API, tests) drives the app through
// StudyService. It serializes all actions so that read-modify-write sequences
// on the store never interleave, and it hands out a fresh session id with
// every session so that late calls aimed at a superseded session are refused
// with ErrStaleSession instead of being applied to the wrong deck.
package service
