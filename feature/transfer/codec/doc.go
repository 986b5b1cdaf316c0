// Package codec implements the JSON, Markdown, and CSV document codecs.
//
// Each codec is a pure transform between the canonical record shapes in
// feature/transfer/records and a byte representation; no codec touches the
// store or the filesystem. The JSON and Markdown codecs work on a whole
// Document; the CSV codec works per entity table, because its on-disk shape
// is a bundle directory with one file per table.
//
// Decoders are lenient at the record level (unknown keys are ignored and a
// malformed line or ingredient cell costs only that line or cell, with a
// warning) but strict at the document level: input whose top-level structure
// cannot be parsed fails with ErrMalformed.
package codec
