// Package main hosts the foxcap CLI entrypoint and command graph.
//
// The Cobra-based command tree covers catalog import and listing, caption
// downloads, batch and single-file conversion to SRT, stream lookup, and
// environment diagnostics. It centralizes configuration resolution and
// structured logging setup so subcommands only wire internal packages
// together.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it through a command or flag here.
package main
