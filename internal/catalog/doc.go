// Package catalog builds the deck list shown to the learner. Built-in decks
// come from a published feed, with the last successful fetch kept as an
// offline fallback; imported decks come from the device store and are always
// listed first.
package catalog
