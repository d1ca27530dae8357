package mcp

import (
	"context"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

// MockLibraryService is a configurable mock for driving.LibraryService.
type MockLibraryService struct {
	CachedFunc       func(ctx context.Context) (domain.Library, error)
	ListFunc         func(ctx context.Context) ([]*domain.BookEntry, error)
	MarkImportedFunc func(ctx context.Context, bookID int64) error
	SaveTokenFunc    func(ctx context.Context, token string) error
	TokenFunc        func(ctx context.Context) (string, error)
	ClearTokenFunc   func(ctx context.Context) error
}

func (m *MockLibraryService) Cached(ctx context.Context) (domain.Library, error) {
	if m.CachedFunc != nil {
		return m.CachedFunc(ctx)
	}
	return nil, nil
}

func (m *MockLibraryService) List(ctx context.Context) ([]*domain.BookEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockLibraryService) MarkImported(ctx context.Context, bookID int64) error {
	if m.MarkImportedFunc != nil {
		return m.MarkImportedFunc(ctx, bookID)
	}
	return nil
}

func (m *MockLibraryService) SaveToken(ctx context.Context, token string) error {
	if m.SaveTokenFunc != nil {
		return m.SaveTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockLibraryService) Token(ctx context.Context) (string, error) {
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx)
	}
	return "", domain.ErrNoToken
}

func (m *MockLibraryService) ClearToken(ctx context.Context) error {
	if m.ClearTokenFunc != nil {
		return m.ClearTokenFunc(ctx)
	}
	return nil
}

// MockSyncService is a configurable mock for driving.SyncService.
type MockSyncService struct {
	SyncFunc   func(ctx context.Context) (domain.Library, error)
	StatusFunc func() driving.SyncStatus
	Cancelled  bool
}

func (m *MockSyncService) Sync(ctx context.Context) (domain.Library, error) {
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx)
	}
	return nil, nil
}

func (m *MockSyncService) Cancel() {
	m.Cancelled = true
}

func (m *MockSyncService) Status() driving.SyncStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return driving.SyncStatus{}
}

// MockExportService is a configurable mock for driving.ExportService.
type MockExportService struct {
	ExportFunc func(ctx context.Context, bookID int64, pageName string) error
}

func (m *MockExportService) Export(ctx context.Context, bookID int64, pageName string) error {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, bookID, pageName)
	}
	return nil
}

// sampleLibrary builds a two-book library for tool and resource tests.
func sampleLibrary() domain.Library {
	return domain.Library{
		"1": &domain.BookEntry{
			Book: &domain.Book{ID: 1, Title: "Walden", Author: "Henry David Thoreau"},
			Highlights: []domain.Highlight{
				{ID: 10, BookID: 1, Text: "Simplicity, simplicity, simplicity!"},
				{ID: 11, BookID: 1, Text: "The mass of men lead lives of quiet desperation."},
			},
			Imported: true,
		},
		"2": &domain.BookEntry{
			Book: &domain.Book{ID: 2, Title: "The Odyssey", Author: "Homer"},
			Highlights: []domain.Highlight{
				{ID: 20, BookID: 2, Text: "Sing to me of the man, Muse."},
			},
		},
	}
}
