// Package pipeline runs foxcap's batch jobs: downloading caption documents for
// every catalog episode and converting caption trees into SRT and plain-text
// files.
//
// Both jobs fan work out to a bounded worker pool and report one result per
// unit of work. A failing episode or document never stops its siblings; only
// context cancellation ends a run early. Callers hold an OutputLock for the
// duration of a run so two processes never write the same tree.
package pipeline
