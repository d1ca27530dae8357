// Package markdown implements the NoteStore port over a Logseq-style
// Markdown graph: one outline file per page under <graph>/pages.
//
// Blocks render as "- " bullets indented with tabs; headings keep
// their "## " marker and block ids persist as "id::" properties so a
// page survives the write -> read round trip.
package markdown
