// Package csvfile loads a training corpus from a CSV file.
//
// The first row is a header and is skipped. Every following row holds a
// query and its response label; further columns are ignored.
package csvfile
