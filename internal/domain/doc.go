// Package domain defines the core business entities for the spaced
// repetition scheduler: cards, review logs, study sessions, and the
// read-only vocabulary/kanji catalog they reference.
package domain
