package scan

import (
	"context"
	"errors"
	"sync"

	"collabnet/data"
)

// fakeCatalog serves a canned discography from memory and records the calls
// the engine makes. The mutex is there because the engine issues enrichment
// and feature-batch calls concurrently.
type fakeCatalog struct {
	mu sync.Mutex

	artist        data.Artist
	albums        []data.Album
	tracksByAlbum map[string][]data.Track
	features      map[string]data.FeatureVector

	// portraits maps collaborator name -> image URL for SearchArtists.
	portraits map[string]string

	artistErr     error
	albumPagesErr error
	trackErr      error
	searchErr     error

	// failFeatureBatchWith fails any FetchAudioFeatures call whose batch
	// contains this id. Content-addressed so the test stays deterministic
	// when batches run concurrently.
	failFeatureBatchWith string

	albumPageCalls int
	featureCalls   [][]string
	searchCalls    []string
}

var errFake = errors.New("fake remote failure")

func (f *fakeCatalog) FetchArtist(ctx context.Context, artistID string) (data.Artist, error) {
	if f.artistErr != nil {
		return data.Artist{}, f.artistErr
	}
	return f.artist, nil
}

func (f *fakeCatalog) SearchArtists(ctx context.Context, name string, limit int) ([]data.Artist, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, name)
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	image, ok := f.portraits[name]
	if !ok {
		return nil, nil
	}
	return []data.Artist{{Name: name, ImageURL: image}}, nil
}

func (f *fakeCatalog) FetchArtistAlbumsPage(ctx context.Context, artistID string, limit, offset int) ([]data.Album, error) {
	f.albumPageCalls++
	if f.albumPagesErr != nil {
		return nil, f.albumPagesErr
	}
	if offset >= len(f.albums) {
		return nil, nil
	}
	return f.albums[offset:min(offset+limit, len(f.albums))], nil
}

func (f *fakeCatalog) FetchAlbumTracks(ctx context.Context, albumID string) ([]data.Track, error) {
	if f.trackErr != nil {
		return nil, f.trackErr
	}
	return f.tracksByAlbum[albumID], nil
}

func (f *fakeCatalog) FetchAudioFeatures(ctx context.Context, ids []string) ([]data.FeatureVector, error) {
	f.mu.Lock()
	f.featureCalls = append(f.featureCalls, ids)
	f.mu.Unlock()
	for _, id := range ids {
		if id == f.failFeatureBatchWith && id != "" {
			return nil, errFake
		}
	}
	var features []data.FeatureVector
	for _, id := range ids {
		if fv, ok := f.features[id]; ok {
			features = append(features, fv)
		}
	}
	return features, nil
}

func track(id, name string, popularity int64, artistNames ...string) data.Track {
	artists := make([]data.Artist, len(artistNames))
	for i, n := range artistNames {
		artists[i] = data.Artist{SpotifyID: "id-" + n, Name: n}
	}
	return data.Track{
		SpotifyID:  id,
		Name:       name,
		Popularity: popularity,
		Artists:    artists,
	}
}
