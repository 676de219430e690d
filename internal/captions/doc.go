// Package captions decodes the XML caption documents published alongside each
// episode into an ordered list of timed fragments.
//
// A caption document is a sequence of Paragraph records, each carrying a start
// offset, an end offset (decimal milliseconds), and a text payload. Word-level
// documents repeat the full line text on every word slot and wrap it in [@ @]
// markers; this package leaves that text untouched so the subtitles package
// can decide how to merge it.
package captions
