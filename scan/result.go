package scan

const (
	mainNodeSize        = 30
	mainNodeBorderWidth = 4

	collaboratorNodeSize = 20

	// Spotify green for the main node's border and for imageless nodes,
	// light gray for edges; the renderer treats these as opaque.
	spotifyGreen = "#1DB954"
	edgeColor    = "#cccccc"
)

// Node is one graph node. The main artist is always first, with size 30 and
// a colored border; collaborators follow in discovery order with size 20.
//
// Color is either a plain color string (imageless collaborators) or a
// nodeBorder (the main node), matching what the renderer expects.
type Node struct {
	ID          string `json:"id"`
	Shape       string `json:"shape"`
	Image       string `json:"image,omitempty"`
	Size        int    `json:"size"`
	BorderWidth int    `json:"borderWidth,omitempty"`
	Color       any    `json:"color,omitempty"`
}

// nodeBorder colors a node's outline only.
type nodeBorder struct {
	Border string `json:"border"`
}

// Edge connects the main artist to one collaborator. There is exactly one
// edge per collaborator regardless of how many tracks they share.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Color string `json:"color"`
}

// TrackMention is one co-credited track on a collaborator's flashcard.
// Mentions are append-only and keep discovery order; a track that
// co-credits the same pair twice appears twice.
type TrackMention struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Flashcard is the per-collaborator summary shown by the UI.
type Flashcard struct {
	Name   string         `json:"name"`
	Image  string         `json:"image"`
	Tracks []TrackMention `json:"tracks"`
}

// YearlyStat is the per-year mean of popularity and the charted audio
// characteristics.
type YearlyStat struct {
	Year         int     `json:"year"`
	Popularity   float64 `json:"popularity"`
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
}

// Result is the scan output. ChartData is nil whenever the chart path
// produced nothing; that is a normal outcome, not an error.
type Result struct {
	ArtistName string               `json:"artist_name"`
	Nodes      []Node               `json:"nodes"`
	Edges      []Edge               `json:"edges"`
	Flashcards map[string]Flashcard `json:"flashcards"`
	ChartData  []YearlyStat         `json:"chartData"`
}

func nodeShape(imageURL string) string {
	if imageURL == "" {
		return "dot"
	}
	return "image"
}
