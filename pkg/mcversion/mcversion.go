// Package mcversion parses Minecraft release versions such as 1.20 or 1.19.2.
package mcversion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
)

// Version is a Minecraft release version
type Version struct {
	Major    int
	Minor    int
	Patch    int
	HasPatch bool
}

// Parse accepts major.minor or major.minor.patch with non-negative integer parts
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, errors.Newf(errors.ErrVersionParse, "invalid Minecraft version %q", s)
	}

	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || strings.HasPrefix(part, "+") {
			return Version{}, errors.Newf(errors.ErrVersionParse, "invalid Minecraft version %q", s)
		}
		nums[i] = n
	}

	v := Version{Major: nums[0], Minor: nums[1]}
	if len(nums) == 3 {
		v.Patch = nums[2]
		v.HasPatch = true
	}
	return v, nil
}

// MustParse is Parse for constants; it panics on invalid input
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.HasPatch {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// NeoForgePrefix is the prefix NeoForge gives its versions for this release:
// Minecraft 1.20.4 maps to 20.4.x, 1.21 to 21.0.x.
func (v Version) NeoForgePrefix() string {
	return fmt.Sprintf("%d.%d.", v.Minor, v.Patch)
}
