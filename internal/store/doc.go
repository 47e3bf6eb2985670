// Package store provides the single source of truth for the
// application's persisted state: the flashcard sets document and the
// review progress document. Both live as JSON files under a data
// directory and are held fully in memory between saves.
//
// All writes funnel through Store.Mutate, which serializes writers,
// applies the mutation to a copy of the in-memory documents, and makes
// the result durable with a write-temp-then-rename save before the
// mutation becomes visible. Readers obtain immutable point-in-time
// copies via Store.Snapshot and never block writers beyond the copy.
package store
