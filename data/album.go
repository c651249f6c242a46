package data

// Album is fetched from Spotify's artist-albums listing. ReleaseDate may be
// partial: Spotify returns year-only or year-month dates for older releases,
// so callers must check Year before using it.
type Album struct {
	SpotifyID string
	Name      string
	Type      string
	ImageURL  string

	TotalTracks int64

	ReleaseDate          string
	ReleaseDatePrecision string

	Artists []Artist
}

// Year returns the release year parsed from the first four characters of the
// release date, or false if the date is missing or too short to carry one.
func (a Album) Year() (int, bool) {
	if len(a.ReleaseDate) < 4 {
		return 0, false
	}
	year := 0
	for _, c := range a.ReleaseDate[:4] {
		if c < '0' || c > '9' {
			return 0, false
		}
		year = year*10 + int(c-'0')
	}
	return year, true
}
