// Package store defines the persistence port for decks.
// The interfaces here abstract the underlying storage mechanism from the
// service layer, so deck invariants stay independent of the database in use.
// Implementations live in internal/platform/sqlstore.
package store
