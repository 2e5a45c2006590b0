package stress

import (
	"bytes"
	"math/rand"
	"testing"

	"collide3d/internal/physics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomVolumesCoverEveryKind(t *testing.T) {
	volumes := RandomVolumes(rand.New(rand.NewSource(1)), 12)
	require.Len(t, volumes, 12)

	seen := map[physics.ShapeKind]int{}
	for _, v := range volumes {
		seen[v.Kind()]++
		assert.Greater(t, v.BoundingSphereRadius(), float32(0))
	}
	assert.Len(t, seen, int(physics.NumShapeKinds))
}

func TestRandomVolumesAreSeeded(t *testing.T) {
	a := RandomVolumes(rand.New(rand.NewSource(7)), 6)
	b := RandomVolumes(rand.New(rand.NewSource(7)), 6)
	for i := range a {
		assert.Equal(t, a[i].Center(), b[i].Center())
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	results, err := Run(Config{Counts: []int{30, 60}, Seed: 42, Iterations: 1}, &out)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.LessOrEqual(t, r.Contacts, r.Candidates, "contacts pass the bounding sphere test")
		assert.Positive(t, r.PerStep)
	}
	assert.Contains(t, out.String(), "30 volumes")
	assert.Contains(t, out.String(), "60 volumes")

	_, err = Run(Config{Counts: []int{1}}, nil)
	assert.ErrorContains(t, err, "at least 2")
}
