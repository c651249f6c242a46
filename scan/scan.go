// Package scan implements the discography scan that discovers an artist's
// collaboration network and, optionally, year-bucketed audio-characteristic
// trends across every track encountered.
//
// A scan walks the artist's album listing page by page, flattens albums into
// tracks, and accumulates two things from the track stream: a capped map of
// collaborators (for the graph and flashcards) and the set of unique tracks
// (for the chart). The graph path is the core output; the chart path is
// best-effort and degrades to no data rather than failing the scan.
package scan

import (
	"context"
	"fmt"

	"collabnet/data"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Catalog is the remote catalog surface the scan consumes. spotify.Client
// implements it.
type Catalog interface {
	FetchArtist(ctx context.Context, artistID string) (data.Artist, error)
	SearchArtists(ctx context.Context, name string, limit int) ([]data.Artist, error)
	FetchArtistAlbumsPage(ctx context.Context, artistID string, limit, offset int) ([]data.Album, error)
	FetchAlbumTracks(ctx context.Context, albumID string) ([]data.Track, error)
	FetchAudioFeatures(ctx context.Context, ids []string) ([]data.FeatureVector, error)
}

// Options bound a single scan.
type Options struct {
	// MaxCollaborators caps the number of distinct collaborator keys. Once
	// reached, no new collaborators are admitted, but already-admitted
	// collaborators keep accumulating track mentions.
	MaxCollaborators int `validate:"gte=1,lte=500"`

	// AlbumPageSize is the page size for the album listing walk.
	AlbumPageSize int `validate:"gte=1,lte=50"`

	// AlbumPageLimit bounds how many album pages are fetched.
	AlbumPageLimit int `validate:"gte=1,lte=20"`

	// StopAtCap stops the album walk as soon as the collaborator cap is
	// reached. The default keeps paging to AlbumPageLimit so chart data
	// keeps accumulating after the cap.
	StopAtCap bool

	// KeyByID keys collaborators by Spotify id instead of display name.
	// The default is name keying, which collapses same-named artists into
	// one node.
	KeyByID bool

	// SkipGraph and SkipChart switch off the graph and chart subsystems.
	// Zero Options runs both.
	SkipGraph bool
	SkipChart bool
}

// DefaultOptions are the options used for zero-valued fields.
var DefaultOptions = Options{
	MaxCollaborators: 50,
	AlbumPageSize:    50,
	AlbumPageLimit:   4,
}

func (o Options) withDefaults() Options {
	if o.MaxCollaborators == 0 {
		o.MaxCollaborators = DefaultOptions.MaxCollaborators
	}
	if o.AlbumPageSize == 0 {
		o.AlbumPageSize = DefaultOptions.AlbumPageSize
	}
	if o.AlbumPageLimit == 0 {
		o.AlbumPageLimit = DefaultOptions.AlbumPageLimit
	}
	return o
}

var validate = validator.New()

// New creates a Scanner over the given catalog. Pass zap.NewNop().Sugar()
// to silence diagnostics.
func New(catalog Catalog, log *zap.SugaredLogger) *Scanner {
	return &Scanner{catalog: catalog, log: log}
}

type Scanner struct {
	catalog Catalog
	log     *zap.SugaredLogger
}

// Scan walks the artist's discography and assembles the collaboration
// network. It fails only when the artist lookup or the album/track walk
// fails; enrichment and chart failures degrade the result instead.
func (s *Scanner) Scan(ctx context.Context, artistID string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid scan options: %w", err)
	}

	main, err := s.catalog.FetchArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("error fetching artist '%s': %w", artistID, err)
	}

	collabs := newCollaborations(main, opts)
	var records []trackRecord

	err = s.walk(ctx, artistID, opts, collabs.Len, func(album data.Album, tracks []data.Track) {
		year, hasYear := album.Year()
		for _, track := range tracks {
			// The chart only wants tracks with a parseable release
			// year; the collaborator scan takes everything.
			if hasYear {
				records = append(records, trackRecord{
					id:         track.SpotifyID,
					year:       year,
					popularity: track.Popularity,
				})
			}
			collabs.Ingest(track, album.ImageURL)
		}
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("discography scan complete",
		"artist", main.Name,
		"collaborators", collabs.Len(),
		"tracks", len(records))

	result := &Result{
		ArtistName: main.Name,
		Flashcards: map[string]Flashcard{},
	}
	if !opts.SkipGraph {
		result.Nodes, result.Edges, result.Flashcards = s.buildGraph(ctx, main, collabs)
	}
	if !opts.SkipChart {
		result.ChartData = s.buildChart(ctx, records)
	}
	return result, nil
}

// buildGraph turns the collaborator map into the node/edge/flashcard sets,
// resolving a portrait for each collaborator first. The three sets are built
// together so every edge target has a node and a flashcard.
func (s *Scanner) buildGraph(ctx context.Context, main data.Artist, collabs *collaborations) ([]Node, []Edge, map[string]Flashcard) {
	collaborators := collabs.Collaborators()

	names := make([]string, len(collaborators))
	for i, co := range collaborators {
		names[i] = co.name
	}
	images := s.resolvePortraits(ctx, names)

	nodes := make([]Node, 0, len(collaborators)+1)
	edges := make([]Edge, 0, len(collaborators))
	flashcards := make(map[string]Flashcard, len(collaborators))

	nodes = append(nodes, Node{
		ID:          main.Name,
		Shape:       nodeShape(main.ImageURL),
		Image:       main.ImageURL,
		Size:        mainNodeSize,
		BorderWidth: mainNodeBorderWidth,
		Color:       nodeBorder{Border: spotifyGreen},
	})

	// Node ids and flashcard keys are display names. Under id keying two
	// collaborators can share a name, so later duplicates get their key
	// appended to stay distinct.
	taken := map[string]bool{main.Name: true}
	for i, co := range collaborators {
		label := co.name
		if taken[label] {
			label = fmt.Sprintf("%s (%s)", co.name, co.key)
		}
		taken[label] = true

		image := images[i]
		node := Node{
			ID:    label,
			Shape: nodeShape(image),
			Image: image,
			Size:  collaboratorNodeSize,
		}
		if image == "" {
			node.Color = spotifyGreen
		}
		nodes = append(nodes, node)
		edges = append(edges, Edge{From: main.Name, To: label, Color: edgeColor})
		flashcards[label] = Flashcard{
			Name:   co.name,
			Image:  image,
			Tracks: co.mentions,
		}
	}

	return nodes, edges, flashcards
}

// buildChart runs the feature pipeline and the per-year aggregation. Every
// failure inside is absorbed: a scan with no chart data is a normal outcome.
func (s *Scanner) buildChart(ctx context.Context, records []trackRecord) []YearlyStat {
	records = dedupRecords(records)
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.id
	}

	features := s.fetchFeatures(ctx, ids)
	if len(features) == 0 {
		s.log.Warnw("no audio features retrieved; skipping chart")
		return nil
	}

	stats := aggregateByYear(records, features)
	if len(stats) == 0 {
		s.log.Warnw("no feature records joined; skipping chart")
		return nil
	}
	return stats
}
