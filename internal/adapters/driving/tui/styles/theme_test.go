package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, theme.Primary.Dark)
	assert.NotEmpty(t, theme.Primary.Light)
	assert.NotEqual(t, theme.Primary.Dark, theme.Primary.Light)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}

func TestStyles_SelectedIsBold(t *testing.T) {
	s := DefaultStyles()

	assert.True(t, s.Selected.GetBold())
	assert.True(t, s.Title.GetBold())
}
