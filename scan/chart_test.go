package scan

import (
	"testing"

	"collabnet/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupRecords(t *testing.T) {
	records := []trackRecord{
		{id: "t1", year: 2000, popularity: 10},
		{id: "t2", year: 2001, popularity: 20},
		{id: "t1", year: 2005, popularity: 99},
		{id: "", year: 2001},
	}

	deduped := dedupRecords(records)

	// First appearance wins; empty ids are dropped.
	assert.Equal(t, []trackRecord{
		{id: "t1", year: 2000, popularity: 10},
		{id: "t2", year: 2001, popularity: 20},
	}, deduped)
}

func TestAggregateByYearSingleRecord(t *testing.T) {
	records := []trackRecord{{id: "t1", year: 2000, popularity: 10}}
	features := map[string]data.FeatureVector{
		"t1": {SpotifyID: "t1", Danceability: 0.5, Energy: 0.8, Valence: 0.25},
	}

	stats := aggregateByYear(records, features)

	require.Len(t, stats, 1)
	assert.Equal(t, YearlyStat{
		Year:         2000,
		Popularity:   10,
		Danceability: 0.5,
		Energy:       0.8,
		Valence:      0.25,
	}, stats[0])
}

func TestAggregateByYearMeans(t *testing.T) {
	records := []trackRecord{
		{id: "t1", year: 2000, popularity: 10},
		{id: "t2", year: 2000, popularity: 30},
		{id: "t3", year: 2003, popularity: 50},
	}
	features := map[string]data.FeatureVector{
		"t1": {SpotifyID: "t1", Danceability: 0.2, Energy: 0.4, Valence: 0.6},
		"t2": {SpotifyID: "t2", Danceability: 0.4, Energy: 0.6, Valence: 0.8},
		"t3": {SpotifyID: "t3", Danceability: 1, Energy: 1, Valence: 1},
	}

	stats := aggregateByYear(records, features)

	require.Len(t, stats, 2)
	assert.Equal(t, 2000, stats[0].Year)
	assert.InDelta(t, 20, stats[0].Popularity, 1e-9)
	assert.InDelta(t, 0.3, stats[0].Danceability, 1e-9)
	assert.InDelta(t, 0.5, stats[0].Energy, 1e-9)
	assert.InDelta(t, 0.7, stats[0].Valence, 1e-9)
	assert.Equal(t, 2003, stats[1].Year)
}

func TestAggregateByYearInnerJoin(t *testing.T) {
	records := []trackRecord{
		{id: "t1", year: 2000, popularity: 10},
		{id: "t2", year: 2000, popularity: 90},
	}
	features := map[string]data.FeatureVector{
		"t1": {SpotifyID: "t1", Danceability: 0.5},
	}

	stats := aggregateByYear(records, features)

	// t2 has no features, so it must not drag the popularity mean.
	require.Len(t, stats, 1)
	assert.InDelta(t, 10, stats[0].Popularity, 1e-9)
}

func TestAggregateByYearEmptyFeatureMap(t *testing.T) {
	records := []trackRecord{{id: "t1", year: 2000, popularity: 10}}
	stats := aggregateByYear(records, map[string]data.FeatureVector{})
	assert.Empty(t, stats)
}
