// Package invoice provides the invoice aggregate and invoice number
// formatting.
//
// Invoice numbers are backed by a single monotonically increasing sequence
// shared by the whole deployment; allocation and persistence of that counter
// live in the postgres adapter. This package owns the display format:
// "<prefix> <sequence><sep>[<month><sep>]<year>".
package invoice
