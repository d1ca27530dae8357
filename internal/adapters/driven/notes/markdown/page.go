package markdown

import (
	"strings"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

const (
	headingMarker = "## "
	warningMarker = "> "
	idProperty    = "id:: "
)

// renderBlocks renders a block tree as Logseq-style outline text.
func renderBlocks(blocks []domain.Block) string {
	var b strings.Builder
	renderInto(&b, blocks, 0)
	return b.String()
}

func renderInto(b *strings.Builder, blocks []domain.Block, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, block := range blocks {
		b.WriteString(indent)
		b.WriteString("- ")
		switch block.Style {
		case domain.StyleHeading:
			b.WriteString(headingMarker)
		case domain.StyleWarning:
			b.WriteString(warningMarker)
		}
		b.WriteString(block.Text)
		b.WriteString("\n")
		if block.ID != "" {
			b.WriteString(indent)
			b.WriteString("  ")
			b.WriteString(idProperty)
			b.WriteString(block.ID)
			b.WriteString("\n")
		}
		renderInto(b, block.Children, depth+1)
	}
}

// parseBlocks parses Logseq-style outline text back into a block tree.
// Unknown constructs degrade to plain text blocks; nothing is dropped.
func parseBlocks(content string) []domain.Block {
	var roots []domain.Block
	// stack[d] points at the most recent block seen at depth d.
	var stack []*domain.Block

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		rest := line[depth:]

		if !strings.HasPrefix(rest, "- ") {
			// Continuation line: a property of the previous block.
			if trimmed := strings.TrimSpace(rest); strings.HasPrefix(trimmed, idProperty) {
				if depth < len(stack) && stack[depth] != nil {
					stack[depth].ID = strings.TrimPrefix(trimmed, idProperty)
				}
			}
			continue
		}

		text := strings.TrimPrefix(rest, "- ")
		style := domain.StyleBullet
		switch {
		case strings.HasPrefix(text, headingMarker):
			style = domain.StyleHeading
			text = strings.TrimPrefix(text, headingMarker)
		case strings.HasPrefix(text, warningMarker):
			style = domain.StyleWarning
			text = strings.TrimPrefix(text, warningMarker)
		}

		block := domain.Block{Text: text, Style: style}

		// Clamp over-indented lines to the deepest open block.
		if depth > len(stack) {
			depth = len(stack)
		}

		if depth == 0 {
			roots = append(roots, block)
			stack = append(stack[:0], &roots[len(roots)-1])
			continue
		}

		parent := stack[depth-1]
		parent.Children = append(parent.Children, block)
		stack = append(stack[:depth], &parent.Children[len(parent.Children)-1])
	}

	return roots
}
