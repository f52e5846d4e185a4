// Package project binds a corpus directory and tier selection to a live
// table session.
package project
