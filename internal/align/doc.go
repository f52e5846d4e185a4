// Package align builds the aligned tier table: a join of annotation
// intervals across files and tiers on exact time-span identity.
//
// One primary tier supplies the rows; any number of secondary tiers fill
// row slots when an interval matches the primary's (xmin, xmax) bounds
// bit-for-bit. Rows are keyed by (source file, xmin, xmax), so identical
// time spans in different files never merge, and surface in first-seen
// insertion order across a deterministic lexical directory walk.
//
// Cells are plain (document, tier index, interval index) coordinates into
// the loaded documents. The documents stay alive for the lifetime of the
// table, which is what lets the table model trace any edit back to the
// file it must be saved to.
package align
