// Package spotify is a minimal Spotify Web API client covering the endpoints
// the collaboration scan needs: artist lookup and search, paged album
// listings, album tracks, track search, and batched audio features.
//
// The client authenticates with the client-credentials flow and respects
// Spotify's documented rate limiting semantics, checking for a Retry-After
// header when it receives a 429 response. A rate-limited call won't error,
// but it might take a long time.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"collabnet/data"
	"collabnet/limiter"
	"collabnet/request"
)

const (
	defaultAPIURL   = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// MaxAudioFeatureIDs is the most track ids Spotify accepts in one
	// audio-features call.
	MaxAudioFeatureIDs = 50
)

// ErrNotFound is returned when Spotify reports 404 for a lookup.
var ErrNotFound = errors.New("not found")

// New creates a new Spotify client, with the given clientID and clientSecret.
func New(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiURL:       defaultAPIURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		lim:          limiter.New(time.Second / 10),
	}
}

type Client struct {
	mu sync.Mutex

	clientID     string
	clientSecret string

	apiURL   string
	tokenURL string

	httpClient *http.Client
	lim        *limiter.Limiter

	accessToken string
	expiresAt   time.Time
}

// FetchArtist looks up a single artist by id.
func (spo *Client) FetchArtist(ctx context.Context, artistID string) (data.Artist, error) {
	resp, err := spo.get(ctx, fmt.Sprintf("%s/artists/%s", spo.apiURL, artistID), nil)
	if err != nil {
		return data.Artist{}, err
	}

	defer resp.Close()
	var result artistObject
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&result); err != nil {
		return data.Artist{}, fmt.Errorf("artist decode error: %w", err)
	}

	return result.artist(), nil
}

// SearchArtists searches artists by name and returns up to limit results.
func (spo *Client) SearchArtists(ctx context.Context, name string, limit int) ([]data.Artist, error) {
	query := url.Values{}
	query.Add("q", fmt.Sprintf(`artist:%s`, name))
	query.Add("type", "artist")
	query.Add("limit", fmt.Sprintf("%d", limit))

	resp, err := spo.get(ctx, spo.apiURL+"/search", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results artistSearchResults
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("artist search decode error: %w", err)
	}

	artists := make([]data.Artist, len(results.Artists.Items))
	for i, item := range results.Artists.Items {
		artists[i] = item.artist()
	}
	return artists, nil
}

// SearchTracks searches tracks matching the query and returns up to limit
// results.
func (spo *Client) SearchTracks(ctx context.Context, q string, limit int) ([]data.Track, error) {
	query := url.Values{}
	query.Add("q", q)
	query.Add("type", "track")
	query.Add("limit", fmt.Sprintf("%d", limit))

	resp, err := spo.get(ctx, spo.apiURL+"/search", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results trackSearchResults
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("track search decode error: %w", err)
	}

	tracks := make([]data.Track, len(results.Tracks.Items))
	for i, item := range results.Tracks.Items {
		var imageURL string
		if len(item.Album.Images) > 0 {
			imageURL = item.Album.Images[0].URL
		}
		artists := make([]data.Artist, len(item.Artists))
		for j, artist := range item.Artists {
			artists[j] = data.Artist{SpotifyID: artist.ID, Name: artist.Name}
		}
		tracks[i] = data.Track{
			SpotifyID:  item.ID,
			Name:       item.Name,
			Popularity: item.Popularity,

			AlbumSpotifyID: item.Album.ID,
			AlbumName:      item.Album.Name,
			AlbumImageURL:  imageURL,
			Artists:        artists,
		}
	}
	return tracks, nil
}

// FetchArtistAlbumsPage fetches one page of an artist's albums and singles,
// starting at the given offset. An empty page means the listing is exhausted.
func (spo *Client) FetchArtistAlbumsPage(ctx context.Context, artistID string, limit, offset int) ([]data.Album, error) {
	query := url.Values{}
	query.Add("limit", fmt.Sprintf("%d", limit))
	query.Add("offset", fmt.Sprintf("%d", offset))
	query.Add("include_groups", "album,single")

	resp, err := spo.get(ctx, fmt.Sprintf("%s/artists/%s/albums", spo.apiURL, artistID), query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results artistAlbumsPage
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("artist albums decode error: %w", err)
	}

	albums := make([]data.Album, len(results.Items))
	for i, album := range results.Items {
		var imageURL string
		if len(album.Images) > 0 {
			imageURL = album.Images[0].URL
		}
		artists := make([]data.Artist, len(album.Artists))
		for j, artist := range album.Artists {
			artists[j] = data.Artist{SpotifyID: artist.ID, Name: artist.Name}
		}
		albums[i] = data.Album{
			SpotifyID:            album.ID,
			Name:                 album.Name,
			Type:                 album.AlbumType,
			ImageURL:             imageURL,
			TotalTracks:          album.TotalTracks,
			ReleaseDate:          album.ReleaseDate,
			ReleaseDatePrecision: album.ReleaseDatePrecision,
			Artists:              artists,
		}
	}
	return albums, nil
}

// FetchAlbumTracks fetches every track on the given album, following the
// listing's internal pagination.
func (spo *Client) FetchAlbumTracks(ctx context.Context, albumID string) ([]data.Track, error) {
	var tracks []data.Track
	for offset := 0; offset < 1000; offset += 50 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := url.Values{}
		query.Add("limit", "50")
		query.Add("offset", fmt.Sprintf("%d", offset))

		resp, err := spo.get(ctx, fmt.Sprintf("%s/albums/%s/tracks", spo.apiURL, albumID), query)
		if err != nil {
			return nil, err
		}

		var results albumTracksPage
		dec := json.NewDecoder(resp)
		err = dec.Decode(&results)
		resp.Close()
		if err != nil {
			return nil, fmt.Errorf("album tracks decode error: %w", err)
		}

		for _, track := range results.Items {
			artists := make([]data.Artist, len(track.Artists))
			for i, artist := range track.Artists {
				artists[i] = data.Artist{
					SpotifyID: artist.ID,
					Name:      artist.Name,
				}
			}
			tracks = append(tracks, data.Track{
				SpotifyID:  track.ID,
				Name:       track.Name,
				Popularity: track.Popularity,

				AlbumSpotifyID: albumID,
				DiscNumber:     track.DiscNumber,
				TrackNumber:    track.TrackNumber,
				Artists:        artists,
			})
		}

		if len(results.Items) < 50 {
			break
		}
	}
	return tracks, nil
}

// FetchAudioFeatures fetches audio-characteristic vectors for up to
// MaxAudioFeatureIDs tracks in one call. Spotify returns null for ids it has
// no analysis for; those are dropped, so the result may be shorter than ids.
func (spo *Client) FetchAudioFeatures(ctx context.Context, ids []string) ([]data.FeatureVector, error) {
	if len(ids) > MaxAudioFeatureIDs {
		return nil, fmt.Errorf("requested %d audio features; max is %d", len(ids), MaxAudioFeatureIDs)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	resp, err := spo.get(ctx, spo.apiURL+"/audio-features", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results audioFeaturesResults
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("audio features decode error: %w", err)
	}

	var features []data.FeatureVector
	for _, f := range results.AudioFeatures {
		if f == nil || f.ID == "" {
			continue
		}
		features = append(features, data.FeatureVector{
			SpotifyID: f.ID,

			Acousticness:     f.Acousticness,
			Danceability:     f.Danceability,
			Energy:           f.Energy,
			Instrumentalness: f.Instrumentalness,
			Liveness:         f.Liveness,
			Loudness:         f.Loudness,
			Speechiness:      f.Speechiness,
			Valence:          f.Valence,
		})
	}
	return features, nil
}

type artistObject struct {
	Followers struct {
		Total int64
	}
	Genres []string
	ID     string
	Images []struct {
		Height int64
		Width  int64
		URL    string
	}
	Name       string
	Popularity int64
}

// artist picks the largest image, matching what the graph wants for node
// portraits.
func (o artistObject) artist() data.Artist {
	var imageURL string
	var maxSize int64
	for _, image := range o.Images {
		if image.Width > maxSize {
			imageURL = image.URL
			maxSize = image.Width
		}
	}
	return data.Artist{
		SpotifyID:  o.ID,
		Name:       o.Name,
		ImageURL:   imageURL,
		Followers:  o.Followers.Total,
		Popularity: o.Popularity,
		Genres:     o.Genres,
	}
}

type artistSearchResults struct {
	Artists struct {
		Limit  int
		Offset int
		Total  int

		Items []artistObject
	}
}

type trackSearchResults struct {
	Tracks struct {
		Limit  int
		Offset int
		Total  int

		Items []struct {
			ID         string
			Name       string
			Popularity int64

			Album struct {
				ID     string
				Name   string
				Images []struct {
					URL string
				}
			}
			Artists []struct {
				ID   string
				Name string
			}
		}
	}
}

type artistAlbumsPage struct {
	Limit  int
	Offset int
	Total  int

	Next     string
	Previous string

	Items []struct {
		AlbumType   string
		TotalTracks int64
		ID          string
		Images      []struct {
			URL string
		}
		Name                 string
		ReleaseDate          string
		ReleaseDatePrecision string
		Artists              []struct {
			Name string
			ID   string
		}
	}
}

type albumTracksPage struct {
	Limit  int
	Offset int
	Total  int

	Next     string
	Previous string

	Items []struct {
		ID         string
		Name       string
		Popularity int64

		DiscNumber  int64
		TrackNumber int64

		Artists []struct {
			ID   string
			Name string
		}
	}
}

type audioFeaturesResults struct {
	AudioFeatures []*struct {
		ID string

		Acousticness     float64
		Danceability     float64
		Energy           float64
		Instrumentalness float64
		Liveness         float64
		Loudness         float64
		Speechiness      float64
		Valence          float64
	} `json:"audio_features"`
}

func (spo *Client) get(ctx context.Context, baseURL string, query url.Values) (io.ReadCloser, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

	for {
		if err := spo.lim.Wait(ctx); err != nil {
			return nil, err
		}

		url, _ := url.Parse(baseURL)
		url.RawQuery = query.Encode()
		req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}

		token, err := spo.token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", token)

		resp, err := spo.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if err := spo.lim.SetNextAt(resp.Header.Get("Retry-After")); err != nil {
				return nil, err
			}
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, fmt.Errorf("'%s': %w", baseURL, ErrNotFound)
		}
		if err := request.Error(resp); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch error: %w", err)
		}

		spo.lim.Delay()

		return resp.Body, nil
	}
}

type tokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (spo *Client) token(ctx context.Context) (string, error) {
	if spo.accessToken == "" || spo.expiresAt.Before(time.Now().Add(time.Second)) {
		if err := spo.fetchToken(ctx); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Bearer %s", spo.accessToken), nil
}

func (spo *Client) fetchToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, "POST", spo.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	up := fmt.Sprintf("%s:%s", spo.clientID, spo.clientSecret)
	credential := base64.StdEncoding.EncodeToString([]byte(up))
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", credential))
	req.Header.Set("Content-type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := spo.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	defer resp.Body.Close()
	if err := request.Error(resp); err != nil {
		return fmt.Errorf("token fetch error: %w", err)
	}

	var result tokenResult
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return fmt.Errorf("token decode error: %w", err)
	}

	spo.accessToken = result.AccessToken
	spo.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)

	return nil
}
