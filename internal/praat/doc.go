// Package praat reads and writes Praat TextGrid annotation files in the
// long text format.
//
// A Document owns its tiers by value and a tier owns its intervals by
// value; there are no back-pointers from an interval to its container.
// Callers that need to trace a cell back to its file keep (document, tier
// index, interval index) coordinates instead. Interval tiers carry the
// time-stamped text labels the rest of the repository aligns and edits;
// point tiers are parsed and written back verbatim so that saving an
// edited document never drops them, but they expose no intervals.
package praat
