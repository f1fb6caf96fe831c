package ftb

import (
	"context"
	"strconv"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
)

// LatestVersion is the version selector meaning "most recently updated"
const LatestVersion = "latest"

// PackQuery selects a pack either by id or by search terms
type PackQuery struct {
	ID          uint64
	SearchTerms []string
	// MinecraftVersion filters search hits to packs with a version targeting it
	MinecraftVersion string
}

// FindPack resolves q to a pack id and returns its details. With search
// terms the first hit wins, skipping hits that do not target the requested
// Minecraft version.
func (c *Client) FindPack(ctx context.Context, q PackQuery) (*PackDetails, error) {
	logger := logging.GetLogger("ftb")

	if len(q.SearchTerms) == 0 {
		if q.ID == 0 {
			return nil, errors.New(errors.ErrInvalidInput, "either a pack id or search terms are required")
		}
		return c.PackDetails(ctx, q.ID)
	}

	logger.Info().Strs("terms", q.SearchTerms).Msg("Searching for best matching pack")
	hits, err := c.Search(ctx, q.SearchTerms)
	if err != nil {
		return nil, err
	}

	for _, id := range hits {
		details, err := c.PackDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		if q.MinecraftVersion == "" || details.targets(q.MinecraftVersion) {
			logger.Debug().Uint64("pack", id).Str("name", details.Name).Msg("Pack selected")
			return details, nil
		}
		logger.Debug().Uint64("pack", id).Str("mcVersion", q.MinecraftVersion).Msg("Skipping pack for another Minecraft version")
	}

	return nil, errors.Newf(errors.ErrReleaseNotFound, "no pack matches %q", strings.Join(q.SearchTerms, " ")).
		WithDetail("mcVersion", q.MinecraftVersion)
}

func (d *PackDetails) targets(mc string) bool {
	for _, v := range d.Versions {
		if v.MinecraftVersion() == mc {
			return true
		}
	}
	return false
}

// SelectVersion picks the version named by selector: "latest" (any case)
// is the one with the greatest updated stamp, anything else must be the
// numeric id of an existing version.
func (d *PackDetails) SelectVersion(selector string) (*PackVersion, error) {
	if len(d.Versions) == 0 {
		return nil, errors.Newf(errors.ErrReleaseNotFound, "pack %d has no versions", d.ID)
	}

	if strings.EqualFold(selector, LatestVersion) {
		best := &d.Versions[0]
		for i := range d.Versions {
			if d.Versions[i].Updated > best.Updated {
				best = &d.Versions[i]
			}
		}
		return best, nil
	}

	id, err := strconv.ParseUint(selector, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "version %q is neither %q nor a version id", selector, LatestVersion)
	}
	for i := range d.Versions {
		if d.Versions[i].ID == id {
			return &d.Versions[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrReleaseNotFound, "pack %d has no version %d", d.ID, id)
}
