package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"collabnet/subcmd"
)

func searchCmd(ctx context.Context, args []string) error {
	subcmd := subcmd.New("search", "search spotify for artists or tracks\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	subcmd.SetArg("query", "string", "search query (required)")
	var (
		kind  = subcmd.String("type", "artist", "what to search: 'artist' or 'track'")
		count = subcmd.Int("count", 5, "number of results to return")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	query := strings.Join(subcmd.Args(), " ")
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	spo, err := spotifyClient()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	switch *kind {
	case "artist":
		artists, err := spo.SearchArtists(ctx, query, *count)
		if err != nil {
			return fmt.Errorf("error in artist search for '%s': %w", query, err)
		}
		if len(artists) == 0 {
			fmt.Printf("no results for '%s'\n", query)
			return nil
		}
		fmt.Fprintf(tw, "spotify_id\tname\tpopularity\tfollowers\tgenres\n")
		for _, artist := range artists {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				artist.SpotifyID, artist.Name, artist.Popularity,
				artist.Followers, strings.Join(artist.Genres, ", "))
		}

	case "track":
		tracks, err := spo.SearchTracks(ctx, query, *count)
		if err != nil {
			return fmt.Errorf("error in track search for '%s': %w", query, err)
		}
		if len(tracks) == 0 {
			fmt.Printf("no results for '%s'\n", query)
			return nil
		}
		fmt.Fprintf(tw, "spotify_id\ttrack\talbum\tartists\tpopularity\n")
		for _, track := range tracks {
			artists := make([]string, len(track.Artists))
			for i, artist := range track.Artists {
				artists[i] = artist.Name
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
				track.SpotifyID, track.Name, track.AlbumName,
				strings.Join(artists, ", "), track.Popularity)
		}

	default:
		return fmt.Errorf("unsupported search type '%s'", *kind)
	}

	return nil
}
