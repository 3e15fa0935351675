// Package protocol owns the tracker/storage wire contract.
//
// Ownership boundary:
// - 10-byte frame header (body length, command, status)
// - command registry
// - big-endian numeric and fixed-width text fields
// - request body encoding and response body decoding
// - error classification (protocol, transport, generic)
//
// Every body is a run of fixed-width fields followed by at most one
// trailing field whose length is implied by the header. Text fields are
// zero padded on encode, silently truncated when too long, and stripped of
// trailing zero bytes on decode. Nothing in this package performs I/O or
// holds mutable state; see package frame for stream helpers.
package protocol
