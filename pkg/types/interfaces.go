package types

import "context"

// Catalog queries release metadata for a project
type Catalog interface {
	// PackInfo returns a project's description
	PackInfo(ctx context.Context, projectID uint64) (*PackInfo, error)

	// FileInfo returns one file of a project
	FileInfo(ctx context.Context, projectID, fileID uint64) (*ReleaseFile, error)

	// Files returns one page of a project's files, page 0 first
	Files(ctx context.Context, projectID uint64, page int) (*FilesPage, error)
}

// Stager moves bytes: downloads, archive extraction and tree copies
type Stager interface {
	// Download fetches url into dest and returns the written path
	Download(ctx context.Context, url, dest string) (string, error)

	// ExtractZip unpacks archive into destDir
	ExtractZip(ctx context.Context, archive, destDir string) error

	// CopyTree copies srcDir into destDir, overwriting by relative path
	CopyTree(srcDir, destDir string) error
}
