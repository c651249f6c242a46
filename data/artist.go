package data

// Artist holds an artist as returned by Spotify's lookup and search APIs.
// Immutable once fetched.
type Artist struct {
	SpotifyID  string
	Name       string
	ImageURL   string
	Followers  int64
	Popularity int64
	Genres     []string
}
