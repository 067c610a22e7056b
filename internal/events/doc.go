// Package events carries in-process notifications between components, such
// as the import manager telling the study controller that the imported decks
// changed.
package events
