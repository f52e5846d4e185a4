// Package launch opens a table selection in an external Praat process.
package launch
