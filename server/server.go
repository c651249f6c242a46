// Package server exposes the scan engine over HTTP. The handlers are thin:
// decode, validate, call the engine, encode.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"collabnet/data"
	"collabnet/scan"
	"collabnet/spotify"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog is the slice of the remote surface the handlers use directly.
type Catalog interface {
	SearchArtists(ctx context.Context, name string, limit int) ([]data.Artist, error)
}

func New(scanner *scan.Scanner, catalog Catalog, log *zap.SugaredLogger) *Server {
	return &Server{
		scanner:  scanner,
		catalog:  catalog,
		log:      log,
		validate: validator.New(),
	}
}

type Server struct {
	scanner  *scan.Scanner
	catalog  Catalog
	log      *zap.SugaredLogger
	validate *validator.Validate
}

// Run serves the API on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := http.Server{Addr: addr, Handler: s.Handler()}

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errs
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Post("/api/search-artist", s.handleSearchArtist)
	r.Post("/api/generate-network", s.handleGenerateNetwork)
	return r
}

// logRequests tags each request with an id and logs it on completion.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		s.log.Infow("request",
			"id", id, "method", req.Method, "path", req.URL.Path)
		next.ServeHTTP(w, req.WithContext(
			context.WithValue(req.Context(), requestIDKey{}, id)))
	})
}

type requestIDKey struct{}

type searchArtistRequest struct {
	ArtistName string `json:"artist_name" validate:"required"`
}

type searchArtistResult struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	Genres     []string `json:"genres"`
	Popularity int64    `json:"popularity"`
}

func (s *Server) handleSearchArtist(w http.ResponseWriter, req *http.Request) {
	var body searchArtistRequest
	if !s.decode(w, req, &body) {
		return
	}

	artists, err := s.catalog.SearchArtists(req.Context(), body.ArtistName, 5)
	if err != nil {
		s.writeError(w, req, err)
		return
	}

	results := make([]searchArtistResult, len(artists))
	for i, artist := range artists {
		results[i] = searchArtistResult{
			ID:         artist.SpotifyID,
			Name:       artist.Name,
			Image:      artist.ImageURL,
			Genres:     artist.Genres,
			Popularity: artist.Popularity,
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"artists": results,
	})
}

type generateNetworkRequest struct {
	ArtistID         string `json:"artist_id" validate:"required"`
	MaxCollaborators int    `json:"max_collaborators" validate:"gte=0,lte=500"`
	AlbumPageSize    int    `json:"album_page_size" validate:"gte=0,lte=50"`
	AlbumPageLimit   int    `json:"album_page_limit" validate:"gte=0,lte=20"`
}

func (s *Server) handleGenerateNetwork(w http.ResponseWriter, req *http.Request) {
	var body generateNetworkRequest
	if !s.decode(w, req, &body) {
		return
	}

	result, err := s.scanner.Scan(req.Context(), body.ArtistID, scan.Options{
		MaxCollaborators: body.MaxCollaborators,
		AlbumPageSize:    body.AlbumPageSize,
		AlbumPageLimit:   body.AlbumPageLimit,
	})
	if err != nil {
		s.writeError(w, req, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"artist_name": result.ArtistName,
		"nodes":       result.Nodes,
		"edges":       result.Edges,
		"flashcards":  result.Flashcards,
		"chartData":   result.ChartData,
	})
}

// decode reads and validates a JSON request body, answering 400 itself when
// either step fails.
func (s *Server) decode(w http.ResponseWriter, req *http.Request, into any) bool {
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(into); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return false
	}
	if err := s.validate.Struct(into); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, req *http.Request, err error) {
	id, _ := req.Context().Value(requestIDKey{}).(string)
	s.log.Errorw("request failed", "id", id, "error", err)

	status := http.StatusInternalServerError
	if errors.Is(err, spotify.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, map[string]any{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if err := enc.Encode(body); err != nil {
		s.log.Errorw("response encode failed", "error", err)
	}
}
