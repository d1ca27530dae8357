// Package notion implements the NoteStore port against the Notion API.
//
// All exports target one configured page: its children are the block
// tree. Headings map to heading_2, highlights to bulleted_list_item
// (notes as nested children) and the conflict marker to a callout.
package notion
