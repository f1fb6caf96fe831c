package testutil

import (
	"context"

	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockCatalog is a testify mock of types.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) PackInfo(ctx context.Context, projectID uint64) (*types.PackInfo, error) {
	args := m.Called(ctx, projectID)
	info, _ := args.Get(0).(*types.PackInfo)
	return info, args.Error(1)
}

func (m *MockCatalog) FileInfo(ctx context.Context, projectID, fileID uint64) (*types.ReleaseFile, error) {
	args := m.Called(ctx, projectID, fileID)
	file, _ := args.Get(0).(*types.ReleaseFile)
	return file, args.Error(1)
}

func (m *MockCatalog) Files(ctx context.Context, projectID uint64, page int) (*types.FilesPage, error) {
	args := m.Called(ctx, projectID, page)
	files, _ := args.Get(0).(*types.FilesPage)
	return files, args.Error(1)
}

// Uint64 returns a pointer to v
func Uint64(v uint64) *uint64 { return &v }
