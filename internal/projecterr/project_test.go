package projecterr

import (
	"errors"
	"io/fs"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/diag"
)

func missingAttempt(eco string) Attempt {
	return Attempt{Ecosystem: eco, Err: FromAsset(&fs.PathError{Op: "find", Path: eco, Err: fs.ErrNotExist})}
}

func TestAggregateAllMissing(t *testing.T) {
	attempts := []Attempt{missingAttempt("cargo"), missingAttempt("npm"), missingAttempt("dist")}
	idx, err := Aggregate(attempts)
	assert.Equal(t, -1, idx)

	var missing *ProjectMissingError
	require.ErrorAs(t, err, &missing)
	require.Len(t, missing.Sources, 3)
	for i, a := range attempts {
		assert.Same(t, a.Err, missing.Sources[i])
	}
	assert.ErrorIs(t, err, fs.ErrNotExist)

	d := Render(err)
	assert.Equal(t, diag.AggProjectMissing, d.Code)
	assert.Nil(t, d.Cause)
	require.Len(t, d.Related, 3)
	assert.Contains(t, d.Message, "Cargo.toml/dist.toml/package.json")
	assert.Contains(t, d.Related[1].Message, "npm")
}

func TestAggregateBrokenStopsAtFirstRoot(t *testing.T) {
	attempts := []Attempt{
		{Ecosystem: "cargo", Found: true, Err: CargoMissing()},
		{Ecosystem: "npm", Found: true},
		missingAttempt("dist"),
	}
	idx, err := Aggregate(attempts)
	assert.Equal(t, -1, idx)

	var broken *ProjectBrokenError
	require.ErrorAs(t, err, &broken)
	var tool *RequiredToolMissingError
	require.ErrorAs(t, err, &tool)
	assert.Equal(t, "cargo", tool.Tool)

	d := Render(err)
	assert.Equal(t, diag.AggProjectBroken, d.Code)
	assert.Empty(t, d.Related)
	require.NotNil(t, d.Cause)
	assert.Equal(t, diag.PrjRequiredToolMissing, d.Cause.Code)
}

func TestAggregateSuccess(t *testing.T) {
	idx, err := Aggregate([]Attempt{missingAttempt("cargo"), {Ecosystem: "npm", Found: true}, {Ecosystem: "dist", Found: true, Err: CargoMissing()}})
	assert.Equal(t, 1, idx)
	assert.Nil(t, err)
}

func TestAggregateNoDetectors(t *testing.T) {
	_, err := Aggregate(nil)
	var missing *ProjectMissingError
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, missing.Sources)
	d := Render(err)
	assert.Equal(t, "no ecosystem detectors are enabled", d.Help)
	assert.Empty(t, d.Related)
}

func TestAggregateOrderIndependentOfArrival(t *testing.T) {
	ecos := []string{"cargo", "npm", "dist", "extra"}
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		// results land in slots by priority whatever order they finish in
		slots := make([]Attempt, len(ecos))
		for _, i := range rng.Perm(len(ecos)) {
			slots[i] = missingAttempt(ecos[i])
		}
		_, err := Aggregate(slots)
		var missing *ProjectMissingError
		require.ErrorAs(t, err, &missing)
		for i, src := range missing.Sources {
			var pe *fs.PathError
			require.True(t, errors.As(src, &pe))
			assert.Equal(t, ecos[i], pe.Path)
		}
	}
}
