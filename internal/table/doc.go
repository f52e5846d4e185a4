// Package table exposes an aligned tier table as a mutable grid and
// tracks which cells changed since the last save.
//
// Edits mutate interval text in place through the alignment coordinates,
// so every modified cell stays traceable to the file it came from. Save
// groups dirty cells by owning document, writes each document at most once
// to its own path, and partitions failures per document: cells of a
// document that failed to write stay dirty for retry while successfully
// flushed documents are cleared.
package table
