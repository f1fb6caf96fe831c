// Package resolver turns a user supplied version selector into a concrete
// release of a catalog project.
package resolver

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/rs/zerolog"
)

// SelectorKind says how a selector picks a release
type SelectorKind int

const (
	// Latest is the project's main file
	Latest SelectorKind = iota
	// ExplicitFileID names a file id, falling back to a name search
	ExplicitFileID
	// NameFragment matches a substring of a file's display name
	NameFragment
)

func (k SelectorKind) String() string {
	switch k {
	case Latest:
		return "latest"
	case ExplicitFileID:
		return "file-id"
	case NameFragment:
		return "name"
	}
	return "unknown"
}

// Selector is a parsed version selector
type Selector struct {
	Kind   SelectorKind
	FileID uint64
	// Raw is the selector as given
	Raw string
}

// ParseSelector classifies s: "latest" in any case, a base-10 unsigned
// integer, or a display name fragment. Surrounding blanks are ignored for
// classification but kept in Raw, which name matching uses as given.
func ParseSelector(s string) (Selector, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Selector{}, errors.New(errors.ErrInvalidInput, "version selector must not be empty")
	}
	if strings.EqualFold(trimmed, "latest") {
		return Selector{Kind: Latest, Raw: s}, nil
	}
	if id, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
		return Selector{Kind: ExplicitFileID, FileID: id, Raw: s}, nil
	}
	return Selector{Kind: NameFragment, Raw: s}, nil
}

// Resolve finds the release sel designates in project projectID
func Resolve(ctx context.Context, catalog types.Catalog, projectID uint64, sel Selector) (*types.ReleaseFile, error) {
	logger := logging.GetLogger("resolver").With().
		Uint64("project", projectID).
		Str("selector", sel.Raw).
		Logger()

	switch sel.Kind {
	case Latest:
		logger.Info().Msg("Version set to latest, determining file id")
		info, err := catalog.PackInfo(ctx, projectID)
		if err != nil {
			return nil, err
		}
		file, err := catalog.FileInfo(ctx, projectID, info.MainFileID)
		return found(logger, file, err)

	case ExplicitFileID:
		logger.Info().Msg("Version recognized as a file id, validating id")
		file, err := catalog.FileInfo(ctx, projectID, sel.FileID)
		if err == nil {
			return found(logger, file, nil)
		}
		if !errors.IsErrorCode(err, errors.ErrReleaseNotFound) {
			return nil, err
		}
		logger.Info().Msg("No file with that id, performing name search")
		file, err = searchByName(ctx, catalog, projectID, sel.Raw)
		return found(logger, file, err)

	case NameFragment:
		logger.Info().Msg("Performing name search")
		file, err := searchByName(ctx, catalog, projectID, sel.Raw)
		return found(logger, file, err)
	}

	return nil, errors.Newf(errors.ErrInvalidInput, "unknown selector kind %d", sel.Kind)
}

func found(logger zerolog.Logger, file *types.ReleaseFile, err error) (*types.ReleaseFile, error) {
	if err != nil {
		return nil, err
	}
	logger.Info().Uint64("file", file.ID).Str("name", file.DisplayName).Msg("Release resolved")
	return file, nil
}

// searchByName pages through the project's files until one whose display
// name contains fragment turns up
func searchByName(ctx context.Context, catalog types.Catalog, projectID uint64, fragment string) (*types.ReleaseFile, error) {
	seen, total := 0, math.MaxInt
	for page := 0; seen < total; page++ {
		files, err := catalog.Files(ctx, projectID, page)
		if err != nil {
			return nil, err
		}
		for i := range files.Files {
			if strings.Contains(files.Files[i].DisplayName, fragment) {
				return &files.Files[i], nil
			}
		}

		if files.Pagination.ResultCount == 0 {
			break
		}
		total = files.Pagination.TotalCount
		seen += files.Pagination.ResultCount
	}

	return nil, errors.Newf(errors.ErrReleaseNotFound, "no release of project %d matches %q", projectID, fragment).
		WithDetail("project", projectID).
		WithDetail("selector", fragment)
}
