// Package mi parses the GDB Machine Interface (GDB/MI) output stream: the
// value grammar (c-strings, tuples, lists), the four record variants, and
// the chunk-to-line framing that turns arbitrary byte chunks into one
// Record per call. It performs no I/O and owns no transport; it only
// converts bytes a caller already has into typed records.
package mi
