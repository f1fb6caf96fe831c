// Package loader parses mod loader identifiers such as "forge-47.2.0" as
// they appear in CurseForge client manifests and on the command line.
package loader

import (
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
)

// Kind is one of the supported mod loaders
type Kind string

const (
	Forge    Kind = "forge"
	Fabric   Kind = "fabric"
	Quilt    Kind = "quilt"
	NeoForge Kind = "neoforge"
)

// Kinds lists the loaders in the order their prefixes are matched
var Kinds = []Kind{NeoForge, Forge, Fabric, Quilt}

// Descriptor names a loader and its version
type Descriptor struct {
	Kind    Kind
	Version string
}

func (d Descriptor) String() string {
	return string(d.Kind) + "-" + d.Version
}

// Parse reads a loader id. The id is lowercased, its kind is taken from
// its prefix and its version is everything after the first "-".
func Parse(id string) (Descriptor, error) {
	raw := strings.ToLower(strings.TrimSpace(id))

	kind, err := kindOf(raw)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, errors.ErrLoaderParse, "invalid loader id %q", id)
	}

	_, version, found := strings.Cut(raw, "-")
	if !found || version == "" {
		return Descriptor{}, errors.Newf(errors.ErrLoaderParse, "loader id %q has no version", id)
	}

	return Descriptor{Kind: kind, Version: version}, nil
}

// ParseKind maps a bare loader name to its Kind
func ParseKind(name string) (Kind, error) {
	raw := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if raw == string(k) {
			return k, nil
		}
	}
	return "", errors.Newf(errors.ErrLoaderParse, "unknown loader %q", name)
}

func kindOf(raw string) (Kind, error) {
	for _, k := range Kinds {
		if strings.HasPrefix(raw, string(k)) {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrLoaderParse, "unknown loader")
}
