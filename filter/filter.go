// Package filter applies the default tag policy on top of user-supplied
// include and exclude tags.
package filter

import (
	"slices"

	"github.com/testpilot-dev/testpilot/types"
)

// EffectiveTagFilter is the include/exclude tag pair after default-policy
// injection. Immutable once computed.
type EffectiveTagFilter struct {
	Include []string
	Exclude []string
}

// IsEmpty reports whether the filter constrains nothing.
func (f EffectiveTagFilter) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Resolve derives the effective tag filter from user intent. It is a pure
// function: the inputs are never mutated and excludes only accumulate.
//
// Policy, applied in order:
//  1. The opt-in-only tag never runs implicitly: unless it was explicitly
//     included, it is added to the excludes.
//  2. An empty include set means the lean default run: the extended tag
//     is added to the excludes.
//  3. Requesting the extended suite also pulls in the umbrella tag.
func Resolve(include, exclude []string) EffectiveTagFilter {
	inc := slices.Clone(include)
	exc := slices.Clone(exclude)

	if !types.HasTag(inc, types.TagOptInOnly) {
		exc = appendUnique(exc, types.TagOptInOnly)
	}

	if len(inc) == 0 {
		exc = appendUnique(exc, types.TagExtended)
	} else if types.HasTag(inc, types.TagExtended) {
		inc = appendUnique(inc, types.TagEverything)
	}

	return EffectiveTagFilter{Include: inc, Exclude: exc}
}

func appendUnique(tags []string, tag string) []string {
	if types.HasTag(tags, tag) {
		return tags
	}
	return append(tags, tag)
}
