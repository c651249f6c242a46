package scan

import (
	"context"
	"fmt"
	"testing"

	"collabnet/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFeaturesBatching(t *testing.T) {
	ids := make([]string, 120)
	features := map[string]data.FeatureVector{}
	for i := range ids {
		id := fmt.Sprintf("t%d", i)
		ids[i] = id
		features[id] = data.FeatureVector{SpotifyID: id}
	}
	catalog := &fakeCatalog{features: features}

	got := newTestScanner(catalog).fetchFeatures(context.Background(), ids)

	require.Len(t, catalog.featureCalls, 3)
	sizes := map[int]int{}
	for _, call := range catalog.featureCalls {
		sizes[len(call)]++
	}
	assert.Equal(t, map[int]int{50: 2, 20: 1}, sizes)
	assert.Len(t, got, 120)
}

func TestFetchFeaturesSkipsFailedBatch(t *testing.T) {
	ids := make([]string, 120)
	features := map[string]data.FeatureVector{}
	for i := range ids {
		id := fmt.Sprintf("t%03d", i)
		ids[i] = id
		features[id] = data.FeatureVector{SpotifyID: id}
	}
	catalog := &fakeCatalog{
		features: features,
		// t050 lives in the second batch (ids 50..99).
		failFeatureBatchWith: "t050",
	}

	got := newTestScanner(catalog).fetchFeatures(context.Background(), ids)

	require.Len(t, catalog.featureCalls, 3)
	assert.Len(t, got, 70)
	assert.Contains(t, got, "t000")
	assert.Contains(t, got, "t119")
	assert.NotContains(t, got, "t050")
	assert.NotContains(t, got, "t099")
}

func TestFetchFeaturesDropsAbsentResults(t *testing.T) {
	catalog := &fakeCatalog{
		features: map[string]data.FeatureVector{
			"t1": {SpotifyID: "t1"},
		},
	}

	got := newTestScanner(catalog).fetchFeatures(context.Background(), []string{"t1", "t2"})

	assert.Len(t, got, 1)
	assert.Contains(t, got, "t1")
}

func TestFetchFeaturesEmptyInput(t *testing.T) {
	catalog := &fakeCatalog{}
	got := newTestScanner(catalog).fetchFeatures(context.Background(), nil)
	assert.Empty(t, got)
	assert.Empty(t, catalog.featureCalls)
}
