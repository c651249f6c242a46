package scan

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// enrichParallelism bounds concurrent portrait lookups.
const enrichParallelism = 4

// resolvePortraits looks up a portrait image for each collaborator.
// Lookups run concurrently, but results land in a slice indexed by input
// position, so output order is discovery order, not completion order.
func (s *Scanner) resolvePortraits(ctx context.Context, names []string) []string {
	images := make([]string, len(names))

	var g errgroup.Group
	g.SetLimit(enrichParallelism)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			images[i] = s.resolvePortrait(ctx, name)
			return nil
		})
	}
	g.Wait()

	return images
}

// resolvePortrait is a best-effort, one-shot name search. Every failure mode
// (remote error, no results, no image) resolves to an empty image so the
// scan continues.
func (s *Scanner) resolvePortrait(ctx context.Context, name string) string {
	artists, err := s.catalog.SearchArtists(ctx, name, 1)
	if err != nil {
		s.log.Warnw("portrait lookup failed", "collaborator", name, "error", err)
		return ""
	}
	if len(artists) == 0 {
		return ""
	}
	return artists[0].ImageURL
}
