package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"collabnet/scan"
	"collabnet/setflag"
	"collabnet/subcmd"

	"go.uber.org/zap"
)

func scanCmd(ctx context.Context, args []string) error {
	subcmd := subcmd.New("scan", "scan an artist's discography and print their collaboration network as json\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	subcmd.SetArg("artist", "string", "spotify artist id, or an artist name with -by-name")
	var (
		byName           = subcmd.Bool("by-name", false, "treat <artist> as a name and search for the id first")
		maxCollaborators = subcmd.Int("max-collaborators", scan.DefaultOptions.MaxCollaborators, "max distinct collaborators")
		pageSize         = subcmd.Int("page-size", scan.DefaultOptions.AlbumPageSize, "album page size")
		pageLimit        = subcmd.Int("page-limit", scan.DefaultOptions.AlbumPageLimit, "max album pages to walk")
		stopAtCap        = subcmd.Bool("stop-at-cap", false, "stop paging as soon as the collaborator cap is reached")
		keyByID          = subcmd.Bool("key-by-id", false, "key collaborators by spotify id instead of display name")
		subsystems       = setflag.New("graph", "chart")
	)
	subcmd.Var(subsystems, "subsystems", "comma-separated subsystems to compute: graph, chart (default both)")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if len(subcmd.Args()) != 1 {
		return fmt.Errorf("expected exactly one <artist> argument")
	}
	artist := subcmd.Args()[0]

	spo, err := spotifyClient()
	if err != nil {
		return err
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if *byName {
		artists, err := spo.SearchArtists(ctx, artist, 1)
		if err != nil {
			return fmt.Errorf("error searching for artist '%s': %w", artist, err)
		}
		if len(artists) == 0 {
			return fmt.Errorf("no artist found for '%s'", artist)
		}
		artist = artists[0].SpotifyID
	}

	opts := scan.Options{
		MaxCollaborators: *maxCollaborators,
		AlbumPageSize:    *pageSize,
		AlbumPageLimit:   *pageLimit,
		StopAtCap:        *stopAtCap,
		KeyByID:          *keyByID,
	}
	if !subsystems.IsZero() {
		opts.SkipGraph = !subsystems.Has("graph")
		opts.SkipChart = !subsystems.Has("chart")
	}

	result, err := scan.New(spo, logger.Sugar()).Scan(ctx, artist, opts)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
