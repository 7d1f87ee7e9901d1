// Package ir defines the records a render call consumes.
//
// The model is stand-off: verse and heading text is stored raw, and every
// annotation is a Mark that points into that text by rune offsets.
//
// # Core Types
//
//   - Verse: one physical verse with paragraph and chapter bookkeeping
//   - Heading: a section title attached to the verse it precedes
//   - PsalmMetadata: a Psalm superscription for a chapter
//   - Mark: a footnote, cross-reference or words-of-Jesus span
//   - Document: the four collections handed to a renderer together
//
// # Stand-off Marks
//
// Marks carry a half-open range [StartOffset, EndOffset) into the text of
// their target. Marks may overlap or nest freely; package marks resolves them
// into an order that is safe for splicing.
//
// # Content Addressing
//
// Documents hash with BLAKE3 over their JSON encoding. The hash is used as a
// cache key and to detect changed input.
package ir
