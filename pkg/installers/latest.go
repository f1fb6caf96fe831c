package installers

import (
	"cmp"
	"context"
	"strconv"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/loader"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/mcversion"
	"github.com/beevik/etree"
)

// ResolveVersion returns version unchanged unless it is "latest", in which
// case the newest build of kind for mc is looked up
func (l *Loaders) ResolveVersion(ctx context.Context, kind loader.Kind, mc mcversion.Version, version string) (string, error) {
	if !strings.EqualFold(version, LatestVersion) {
		return version, nil
	}

	var (
		resolved string
		err      error
	)
	switch kind {
	case loader.Forge:
		// Forge versions are published as "<mc>-<forge>"
		resolved, err = l.latestFromMaven(ctx, l.ForgeMaven, mc.String()+"-")
		resolved = strings.TrimPrefix(resolved, mc.String()+"-")
	case loader.NeoForge:
		resolved, err = l.latestFromMaven(ctx, l.NeoForgeMaven, mc.NeoForgePrefix())
	case loader.Fabric:
		resolved, err = l.latestFabricLoader(ctx, mc)
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "%s has no latest version lookup", kind)
	}
	if err != nil {
		return "", err
	}

	logger := logging.GetLogger("installers")
	logger.Info().
		Str("loader", string(kind)).
		Str("mcVersion", mc.String()).
		Str("version", resolved).
		Msg("Latest loader version resolved")
	return resolved, nil
}

// latestFromMaven reads maven-metadata.xml below repo and returns the
// highest version starting with prefix
func (l *Loaders) latestFromMaven(ctx context.Context, repo, prefix string) (string, error) {
	url := strings.TrimRight(repo, "/") + "/maven-metadata.xml"
	body, err := l.API.GetBytes(ctx, url)
	if err != nil {
		return "", err
	}

	versions, err := MavenVersions(body)
	if err != nil {
		return "", err
	}

	latest := ""
	for _, v := range versions {
		if !strings.HasPrefix(v, prefix) {
			continue
		}
		if latest == "" || CompareVersions(strings.TrimPrefix(v, prefix), strings.TrimPrefix(latest, prefix)) > 0 {
			latest = v
		}
	}
	if latest == "" {
		return "", errors.Newf(errors.ErrReleaseNotFound, "no version starting with %q in %s", prefix, url)
	}
	return latest, nil
}

// CompareVersions orders dotted versions part by part, numerically where
// both parts are numbers. A release sorts above its "-suffix" pre-releases:
// 20.4.237 > 20.4.80-beta, 43.10.0 > 43.2.21, 1.0 > 1.0-rc1.
func CompareVersions(a, b string) int {
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := comparePart(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) == len(pb):
		return 0
	case len(pa) > len(pb):
		return extraSign(pa[len(pb)])
	default:
		return -extraSign(pb[len(pa)])
	}
}

func versionParts(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool { return r == '.' || r == '-' || r == '+' })
}

func comparePart(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}

// extraSign is how a version compares to its own prefix given the first
// part only it has
func extraSign(part string) int {
	if _, err := strconv.ParseUint(part, 10, 64); err == nil {
		return 1
	}
	return -1
}

// MavenVersions lists metadata/versioning/versions/version in document order
func MavenVersions(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalog, "parsing maven metadata")
	}

	var versions []string
	for _, el := range doc.FindElements("/metadata/versioning/versions/version") {
		if v := strings.TrimSpace(el.Text()); v != "" {
			versions = append(versions, v)
		}
	}
	return versions, nil
}
