// Package version implements the semantic version triple used to order
// aggregate log sections. This is a separate package to avoid import
// cycles - it depends on nothing but the error taxonomy and can be safely
// imported from any package.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/ronlog/internal/errors"
)

// Version is an immutable major.minor.patch triple. Pre-release and build
// tags are accepted on input but carry no weight in ordering.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse converts a version string into a Version. The input must consist
// of exactly three numeric dot-separated segments; callers strip any
// leading "v" before calling. Malformed input fails with a
// MalformedVersionError naming the offending text.
func Parse(text string) (Version, error) {
	sv, err := semver.StrictNewVersion(text)
	if err != nil {
		return Version{}, &errors.MalformedVersionError{
			Input:  text,
			Reason: "expected a numeric major.minor.patch triple",
		}
	}

	return Version{
		Major: sv.Major(),
		Minor: sv.Minor(),
		Patch: sv.Patch(),
	}, nil
}

// MustParse is a test helper that panics on malformed input.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or +1 comparing the numeric triples of a and b,
// major first, then minor, then patch.
func Compare(a, b Version) int {
	if c := compareUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareUint(a.Patch, b.Patch)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Equal reports whether both triples match exactly.
func (v Version) Equal(other Version) bool {
	return v == other
}

// String renders the triple in the canonical major.minor.patch form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
