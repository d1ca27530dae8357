package mcp

import (
	"context"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

func readRequest(uri string) *sdk.ReadResourceRequest {
	return &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uri},
	}
}

func TestReadBooks(t *testing.T) {
	library := sampleLibrary()
	server := newTestServer(t, &Ports{
		Library: &MockLibraryService{
			ListFunc: func(ctx context.Context) ([]*domain.BookEntry, error) {
				return library.Sorted(), nil
			},
		},
	})

	res, err := server.readBooks(context.Background(), readRequest(booksURI))

	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, booksURI, res.Contents[0].URI)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.Contains(t, res.Contents[0].Text, "Walden")
}

func TestReadHighlights(t *testing.T) {
	library := sampleLibrary()
	server := newTestServer(t, &Ports{
		Library: &MockLibraryService{
			CachedFunc: func(ctx context.Context) (domain.Library, error) {
				return library, nil
			},
		},
	})

	res, err := server.readHighlights(context.Background(), readRequest("marginalia://books/2/highlights"))

	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "Sing to me of the man, Muse.")
}

func TestReadHighlights_UnknownBook(t *testing.T) {
	server := newTestServer(t, &Ports{
		Library: &MockLibraryService{
			CachedFunc: func(ctx context.Context) (domain.Library, error) {
				return sampleLibrary(), nil
			},
		},
	})

	_, err := server.readHighlights(context.Background(), readRequest("marginalia://books/42/highlights"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractBookID(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    int64
		wantErr bool
	}{
		{name: "valid", uri: "marginalia://books/7/highlights", want: 7},
		{name: "large id", uri: "marginalia://books/9007199254740993/highlights", want: 9007199254740993},
		{name: "wrong scheme", uri: "readwise://books/7/highlights", wantErr: true},
		{name: "missing suffix", uri: "marginalia://books/7", wantErr: true},
		{name: "non numeric", uri: "marginalia://books/walden/highlights", wantErr: true},
		{name: "empty id", uri: "marginalia://books//highlights", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractBookID(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
