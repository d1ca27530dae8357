package notion

import (
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

func TestNewStore_RequiresTokenAndPage(t *testing.T) {
	_, err := NewStore("", "page-id")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewStore("secret_abc", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	store, err := NewStore("secret_abc", "page-id")
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestToNotionBlock_Heading(t *testing.T) {
	block := toNotionBlock(domain.Block{Text: "Walden", Style: domain.StyleHeading})

	heading, ok := block.(*notionapi.Heading2Block)
	require.True(t, ok)
	assert.Equal(t, notionapi.BlockTypeHeading2, heading.Type)
	require.Len(t, heading.Heading2.RichText, 1)
	assert.Equal(t, "Walden", heading.Heading2.RichText[0].Text.Content)
}

func TestToNotionBlock_BulletWithNestedNote(t *testing.T) {
	block := toNotionBlock(domain.Block{
		Text:  "Simplify, simplify.",
		Style: domain.StyleBullet,
		Children: []domain.Block{
			{Text: "closing chapter", Style: domain.StyleBullet},
		},
	})

	bullet, ok := block.(*notionapi.BulletedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "Simplify, simplify.", bullet.BulletedListItem.RichText[0].Text.Content)

	require.Len(t, bullet.BulletedListItem.Children, 1)
	child, ok := bullet.BulletedListItem.Children[0].(*notionapi.BulletedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "closing chapter", child.BulletedListItem.RichText[0].Text.Content)
}

func TestToNotionBlock_WarningIsCallout(t *testing.T) {
	block := toNotionBlock(domain.Block{Text: "already has content", Style: domain.StyleWarning})

	callout, ok := block.(*notionapi.CalloutBlock)
	require.True(t, ok)
	assert.Equal(t, "already has content", callout.Callout.RichText[0].Text.Content)
	require.NotNil(t, callout.Callout.Icon)
	require.NotNil(t, callout.Callout.Icon.Emoji)
	assert.Equal(t, notionapi.Emoji(warningEmoji), *callout.Callout.Icon.Emoji)
}

func TestBlockText_ReadsPlainText(t *testing.T) {
	para := &notionapi.ParagraphBlock{
		BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{{PlainText: "hand-written note"}},
		},
	}

	assert.Equal(t, "hand-written note", blockText(para))
	assert.Equal(t, domain.StyleText, blockStyle(para))
}

func TestBlockText_UnsupportedTypeCountsAsContent(t *testing.T) {
	table := &notionapi.TableBlock{
		BasicBlock: basicBlock(notionapi.BlockTypeTableBlock),
	}

	page := &domain.Page{Blocks: []domain.Block{{
		Text:  blockText(table),
		Style: blockStyle(table),
	}}}
	assert.True(t, page.HasContent())
}
