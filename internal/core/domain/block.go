package domain

import "strings"

// BlockStyle identifies how a content block is rendered in the notes
// target.
type BlockStyle string

const (
	// StyleText is a plain text block.
	StyleText BlockStyle = "text"

	// StyleHeading is a heading block.
	StyleHeading BlockStyle = "heading"

	// StyleBullet is a bulleted list item.
	StyleBullet BlockStyle = "bullet"

	// StyleWarning is a caution block, used for the export conflict
	// marker.
	StyleWarning BlockStyle = "warning"
)

// Block is one content block destined for (or read from) a notes
// target page. Blocks form a tree via Children.
type Block struct {
	// ID is the block identifier. Assigned by the exporter for new
	// blocks; notes adapters may overwrite it with the target's own id.
	ID string `json:"id,omitempty"`

	// Text is the block content.
	Text string `json:"text"`

	// Style controls rendering.
	Style BlockStyle `json:"style"`

	// Children are nested blocks, indented one level below this one.
	Children []Block `json:"children,omitempty"`
}

// Page is a notes target page: a named block tree.
type Page struct {
	// Name is the page name as the user addresses it.
	Name string

	// ID is the adapter-specific page identifier (file path, Notion
	// page id). Empty for pages that do not exist yet.
	ID string

	// Blocks is the page's current top-level content.
	Blocks []Block
}

// HasContent reports whether the page already carries user content.
// Blocks containing only whitespace do not count.
func (p *Page) HasContent() bool {
	for _, b := range p.Blocks {
		if strings.TrimSpace(b.Text) != "" || len(b.Children) > 0 {
			return true
		}
	}
	return false
}
