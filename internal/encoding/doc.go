// Package encoding holds the low-level field codecs of protocol-1 tables.
//
// RowWriter and RowReader handle the variable-length row data section:
// uvarint-prefixed strings and byte strings, uvarints and float64 bit patterns
// in the table's byte order. AppendNuclideIDs and DecodeNuclideIDs handle the
// id list of the nucpath side table. These are internal to matlib; use the
// table package instead.
package encoding
