package data

// Track is one track from an album listing. Album-listing track objects
// carry no audio analysis; those fields arrive separately through the
// audio-features batch endpoint as a FeatureVector keyed by SpotifyID.
type Track struct {
	SpotifyID  string
	Name       string
	Popularity int64

	AlbumSpotifyID string
	AlbumName      string
	AlbumImageURL  string
	DiscNumber     int64
	TrackNumber    int64

	Artists []Artist
}

// FeatureVector is the audio-characteristic vector for one track.
type FeatureVector struct {
	SpotifyID string

	Acousticness     float64
	Danceability     float64
	Energy           float64
	Instrumentalness float64
	Liveness         float64
	Loudness         float64
	Speechiness      float64
	Valence          float64
}

// Vector converts the named characteristics the chart aggregates over into a
// Vector suitable for arithmetic.
func (f FeatureVector) Vector() Vector {
	return Vector{
		"danceability": f.Danceability,
		"energy":       f.Energy,
		"valence":      f.Valence,
	}
}
