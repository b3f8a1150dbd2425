// Package service implements the application layer that orchestrates the
// scheduling domain, the stores, and transactions. Services own the
// transaction boundaries: a graded review persists the card update and the
// matching review log entry atomically, and introducing new cards creates
// all of their rows in one transaction. HTTP handlers call services and
// never touch stores directly.
package service
