// Package model provides the user-facing data structures produced by
// document analysis and consumed by document modification.
//
// All analysis operations ultimately produce an [AnalysisResult]; all
// modification operations consume a [ModifyOptions]. The types carry JSON
// tags so an HTTP collaborator can serialize them directly.
//
// # Analysis
//
// An [AnalysisResult] aggregates the classified title and author records,
// the ordered paragraph list, deduplicated body styles, embedded images
// with their located positions, and (when deep detection succeeded) a
// [DeepFontAnalysis] with per-font usage statistics.
//
// # Modification
//
// [ModifyOptions] holds one optional [RoleOptions] per document role
// (title, author, body). Fields left nil in a RoleOptions fall back to a
// component-level default style for that role, not to the source
// document's value; Prefix and Suffix always compose with the original
// text.
package model
