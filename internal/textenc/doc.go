// Package textenc detects and decodes the character encodings found in
// Praat annotation files.
//
// Praat writes TextGrids as UTF-16 (with BOM), UTF-8, or a legacy 8-bit
// encoding. Detect classifies a file from its raw bytes: a BOM wins, then
// strict UTF-8 validation of the remaining byte stream, then Latin-1 as the
// never-failing fallback. NewReader and NewWriter wrap readers/writers with
// the matching golang.org/x/text transforms so files round-trip in their
// source encoding.
package textenc
