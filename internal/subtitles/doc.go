// Package subtitles turns parsed caption fragments into SRT cues.
//
// Normalize collapses word-level fragment streams (each word slot repeating
// the whole line wrapped in [@ @] markers) into one cue per line and drops
// pinyin guide lines from the merged text. Line-level streams pass through
// one cue per fragment. Compose and ParseSRT convert between cues and the
// numbered SRT text format; PlainText reduces cues to a transcript.
//
// Everything here is pure and safe to call from concurrent pipelines.
package subtitles
