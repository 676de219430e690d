// Package catalog models the series and episodes foxcap knows about and
// persists them in a small SQLite database.
//
// A Catalog is built once (from the store or a legacy urls.json export) and
// handed to the download and convert pipelines; nothing re-reads it from disk
// mid-run. Series and Episode values are validated at construction so the
// pipelines can trust identifiers, titles, and URLs without re-checking them.
package catalog
