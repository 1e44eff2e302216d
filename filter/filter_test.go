package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testpilot-dev/testpilot/types"
)

func TestResolve_DefaultRunExcludesExtendedAndOptIn(t *testing.T) {
	f := Resolve(nil, nil)

	assert.Empty(t, f.Include)
	assert.Contains(t, f.Exclude, types.TagExtended)
	assert.Contains(t, f.Exclude, types.TagOptInOnly)
}

func TestResolve_ExtendedRequestPullsInEverything(t *testing.T) {
	f := Resolve([]string{types.TagExtended}, nil)

	assert.Contains(t, f.Include, types.TagExtended)
	assert.Contains(t, f.Include, types.TagEverything)
	assert.NotContains(t, f.Exclude, types.TagExtended)
	// Opt-in-only tests still stay out unless requested by name.
	assert.Contains(t, f.Exclude, types.TagOptInOnly)
}

func TestResolve_OptInTagRequestedExplicitly(t *testing.T) {
	f := Resolve([]string{types.TagOptInOnly}, nil)

	assert.Contains(t, f.Include, types.TagOptInOnly)
	assert.NotContains(t, f.Exclude, types.TagOptInOnly)
	// Includes are non-empty, so the extended suite is not force-excluded.
	assert.NotContains(t, f.Exclude, types.TagExtended)
}

func TestResolve_ExcludesAccumulate(t *testing.T) {
	f := Resolve(nil, []string{"Slow"})

	assert.Equal(t, []string{"Slow", types.TagOptInOnly, types.TagExtended}, f.Exclude)
}

func TestResolve_NoDuplicateInjection(t *testing.T) {
	f := Resolve(nil, []string{types.TagExtended, types.TagOptInOnly})

	assert.Equal(t, []string{types.TagExtended, types.TagOptInOnly}, f.Exclude)
}

func TestResolve_PureFunction(t *testing.T) {
	include := []string{types.TagExtended}
	exclude := []string{"Slow"}

	first := Resolve(include, exclude)
	second := Resolve(include, exclude)

	require.Equal(t, first, second)
	// Inputs must never be mutated by resolution.
	assert.Equal(t, []string{types.TagExtended}, include)
	assert.Equal(t, []string{"Slow"}, exclude)
}

func TestResolve_PlainIncludeLeavesExtendedAlone(t *testing.T) {
	f := Resolve([]string{"Smoke"}, nil)

	assert.Equal(t, []string{"Smoke"}, f.Include)
	assert.NotContains(t, f.Exclude, types.TagExtended)
	assert.Contains(t, f.Exclude, types.TagOptInOnly)
}
