// Command tgrid builds aligned tables from Praat TextGrid corpora and
// edits them in bulk.
package main
