package main

import (
	"context"
	"fmt"

	"collabnet/scan"
	"collabnet/server"
	"collabnet/subcmd"

	"go.uber.org/zap"
)

func serve(ctx context.Context, args []string) error {
	addr, err := serveAddr(args)
	if err != nil {
		return err
	}

	spo, err := spotifyClient()
	if err != nil {
		return err
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	scanner := scan.New(spo, log)
	srv := server.New(scanner, spo, log)

	log.Infow("serving", "addr", addr)
	return srv.Run(ctx, addr)
}

// serveAddr parses the serve flags into the listen address.
func serveAddr(args []string) (string, error) {
	subcmd := subcmd.New("serve", "run the collaboration-network web api\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	var (
		port = subcmd.Int("port", 9999, "http port")
	)
	if err := subcmd.Parse(args); err != nil {
		return "", fmt.Errorf("flag parsing err: %w", err)
	}
	return fmt.Sprintf(":%d", *port), nil
}
