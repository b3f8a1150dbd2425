// Package store defines the persistence contracts consumed by the
// scheduling core: cards, review logs, study sessions, the read-only
// catalog, and the key/value settings table.
package store
