package scan

import (
	"context"
	"fmt"

	"collabnet/data"
)

// walkState is the input to the walk's termination predicate: everything
// known after fetching pagesFetched pages.
type walkState struct {
	pagesFetched int
	pageLimit    int
	lastPageLen  int
	pageSize     int

	collaborators    int
	maxCollaborators int
	stopAtCap        bool
}

// shouldContinue decides whether to fetch another album page. The walk stops
// at the first of: an exhausted listing (short or empty page), the page
// limit, or, when stopAtCap is set, a full collaborator map.
func shouldContinue(s walkState) bool {
	if s.pagesFetched > 0 && s.lastPageLen < s.pageSize {
		return false
	}
	if s.pagesFetched >= s.pageLimit {
		return false
	}
	if s.stopAtCap && s.collaborators >= s.maxCollaborators {
		return false
	}
	return true
}

// walk drives the paged album listing and flattens each album into its
// tracks, calling visit once per album. Any listing or track fetch error is
// fatal to the whole scan.
func (s *Scanner) walk(ctx context.Context, artistID string, opts Options, collaborators func() int, visit func(album data.Album, tracks []data.Track)) error {
	state := walkState{
		pageLimit:        opts.AlbumPageLimit,
		pageSize:         opts.AlbumPageSize,
		maxCollaborators: opts.MaxCollaborators,
		stopAtCap:        opts.StopAtCap,
	}

	for offset := 0; ; offset += opts.AlbumPageSize {
		state.collaborators = collaborators()
		if !shouldContinue(state) {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		albums, err := s.catalog.FetchArtistAlbumsPage(ctx, artistID, opts.AlbumPageSize, offset)
		if err != nil {
			return fmt.Errorf("error fetching albums for '%s' at offset %d: %w", artistID, offset, err)
		}
		state.pagesFetched++
		state.lastPageLen = len(albums)

		for _, album := range albums {
			tracks, err := s.catalog.FetchAlbumTracks(ctx, album.SpotifyID)
			if err != nil {
				return fmt.Errorf("error fetching tracks for album '%s': %w", album.SpotifyID, err)
			}
			for i := range tracks {
				tracks[i].AlbumName = album.Name
				tracks[i].AlbumImageURL = album.ImageURL
			}
			visit(album, tracks)
		}
	}
}
