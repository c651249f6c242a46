package scan

import (
	"sort"

	"collabnet/data"
)

// trackRecord is one chart-eligible track from the walk: a track whose album
// carried a parseable release year.
type trackRecord struct {
	id         string
	year       int
	popularity int64
}

// dedupRecords collapses repeated appearances of the same track (say, on an
// album and a single) to one record, keeping the first and its order.
func dedupRecords(records []trackRecord) []trackRecord {
	seen := make(map[string]struct{}, len(records))
	deduped := records[:0:0]
	for _, r := range records {
		if r.id == "" {
			continue
		}
		if _, ok := seen[r.id]; ok {
			continue
		}
		seen[r.id] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped
}

// aggregateByYear inner-joins track records with the feature map on track id,
// groups the surviving rows by year, and returns per-year means sorted by
// year. A join that yields no rows returns nil.
func aggregateByYear(records []trackRecord, features map[string]data.FeatureVector) []YearlyStat {
	type group struct {
		popularity float64
		vectors    []data.Vector
	}
	groups := map[int]*group{}

	for _, r := range records {
		f, ok := features[r.id]
		if !ok {
			continue
		}
		g := groups[r.year]
		if g == nil {
			g = &group{}
			groups[r.year] = g
		}
		g.popularity += float64(r.popularity)
		g.vectors = append(g.vectors, f.Vector())
	}
	if len(groups) == 0 {
		return nil
	}

	stats := make([]YearlyStat, 0, len(groups))
	for year, g := range groups {
		mean := data.Mean(g.vectors)
		stats = append(stats, YearlyStat{
			Year:         year,
			Popularity:   g.popularity / float64(len(g.vectors)),
			Danceability: mean["danceability"],
			Energy:       mean["energy"],
			Valence:      mean["valence"],
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Year < stats[j].Year })
	return stats
}
