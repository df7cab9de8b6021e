// Package store defines the persistence contracts of the application:
// interfaces over the relational record store for items, decks, and review
// states, shared sentinel errors, and the transaction helper. Concrete
// implementations live in internal/platform/sqlite.
package store
