// Package preflight provides readiness checks for the filesystem paths,
// catalog database, and caption host that foxcap depends on.
//
// The CLI "foxcap doctor" command runs RunAll and renders each Result; the
// individual checks are exported so commands can gate on a single concern.
package preflight
