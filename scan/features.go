package scan

import (
	"context"
	"sync"

	"collabnet/data"

	"golang.org/x/sync/errgroup"
)

const (
	// featureBatchSize is the most track ids submitted per audio-features
	// call, matching the remote endpoint's limit.
	featureBatchSize = 50

	// featureParallelism bounds concurrent batch calls.
	featureParallelism = 2
)

// fetchFeatures retrieves audio features for the given track ids in batches
// of featureBatchSize. A batch that fails is logged and skipped; an id the
// remote has no analysis for is simply absent from the result. Callers must
// treat absence as "no data", never as an error.
func (s *Scanner) fetchFeatures(ctx context.Context, ids []string) map[string]data.FeatureVector {
	features := make(map[string]data.FeatureVector, len(ids))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(featureParallelism)
	for start := 0; start < len(ids); start += featureBatchSize {
		batch := ids[start:min(start+featureBatchSize, len(ids))]
		g.Go(func() error {
			got, err := s.catalog.FetchAudioFeatures(ctx, batch)
			if err != nil {
				s.log.Warnw("audio features batch failed",
					"size", len(batch), "error", err)
				return nil
			}
			mu.Lock()
			for _, f := range got {
				if f.SpotifyID == "" {
					continue
				}
				features[f.SpotifyID] = f
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return features
}
