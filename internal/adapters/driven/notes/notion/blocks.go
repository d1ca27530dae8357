package notion

import (
	"github.com/jomei/notionapi"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// toNotionBlocks converts a block tree to Notion request blocks.
// Notion assigns block ids on create, so domain ids are not sent.
func toNotionBlocks(blocks []domain.Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toNotionBlock(b))
	}
	return out
}

func toNotionBlock(b domain.Block) notionapi.Block {
	text := richText(b.Text)
	var children notionapi.Blocks
	if len(b.Children) > 0 {
		children = toNotionBlocks(b.Children)
	}

	switch b.Style {
	case domain.StyleHeading:
		// Headings cannot carry children in the Notion API.
		return &notionapi.Heading2Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: text},
		}
	case domain.StyleBullet:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basicBlock(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: text, Children: children},
		}
	case domain.StyleWarning:
		emoji := notionapi.Emoji(warningEmoji)
		return &notionapi.CalloutBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeCallout),
			Callout: notionapi.Callout{
				RichText: text,
				Icon:     &notionapi.Icon{Type: "emoji", Emoji: &emoji},
				Children: children,
			},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: text, Children: children},
		}
	}
}

func basicBlock(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{
		Object: notionapi.ObjectTypeBlock,
		Type:   t,
	}
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}

// blockText extracts the plain text of a Notion block. Unsupported
// block types yield their type name, so a page holding any of them
// still counts as non-empty for the conflict guard.
func blockText(b notionapi.Block) string {
	switch t := b.(type) {
	case *notionapi.ParagraphBlock:
		return plainText(t.Paragraph.RichText)
	case *notionapi.Heading1Block:
		return plainText(t.Heading1.RichText)
	case *notionapi.Heading2Block:
		return plainText(t.Heading2.RichText)
	case *notionapi.Heading3Block:
		return plainText(t.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		return plainText(t.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		return plainText(t.NumberedListItem.RichText)
	case *notionapi.CalloutBlock:
		return plainText(t.Callout.RichText)
	case *notionapi.QuoteBlock:
		return plainText(t.Quote.RichText)
	case *notionapi.ToDoBlock:
		return plainText(t.ToDo.RichText)
	default:
		return string(b.GetType())
	}
}

func blockStyle(b notionapi.Block) domain.BlockStyle {
	switch b.(type) {
	case *notionapi.Heading1Block, *notionapi.Heading2Block, *notionapi.Heading3Block:
		return domain.StyleHeading
	case *notionapi.BulletedListItemBlock, *notionapi.NumberedListItemBlock:
		return domain.StyleBullet
	case *notionapi.CalloutBlock:
		return domain.StyleWarning
	default:
		return domain.StyleText
	}
}

func hasChildren(b notionapi.Block) bool {
	switch t := b.(type) {
	case *notionapi.ParagraphBlock:
		return t.HasChildren
	case *notionapi.BulletedListItemBlock:
		return t.HasChildren
	case *notionapi.NumberedListItemBlock:
		return t.HasChildren
	case *notionapi.CalloutBlock:
		return t.HasChildren
	case *notionapi.QuoteBlock:
		return t.HasChildren
	case *notionapi.ToDoBlock:
		return t.HasChildren
	default:
		return false
	}
}

func plainText(rts []notionapi.RichText) string {
	var out string
	for _, rt := range rts {
		if rt.PlainText != "" {
			out += rt.PlainText
			continue
		}
		if rt.Text != nil {
			out += rt.Text.Content
		}
	}
	return out
}
