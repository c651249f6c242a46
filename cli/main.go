// collabnet maps a musical artist's collaboration network by walking their
// discography on spotify.
//
// requires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET in the environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"collabnet/sigctx"
	"collabnet/spotify"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: collabnet $cmd
valid $cmd are 'scan', 'search', 'serve'
for help: collabnet $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "scan":
		return scanCmd(ctx, args)

	case "search":
		return searchCmd(ctx, args)

	case "serve":
		return serve(ctx, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}

func spotifyClient() (*spotify.Client, error) {
	clientID, clientSecret := os.Getenv("SPOTIFY_CLIENT_ID"), os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("must set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}
	return spotify.New(clientID, clientSecret), nil
}
