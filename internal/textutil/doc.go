// Package textutil provides filename sanitization and the title slugs used to
// name series and episode directories.
package textutil
