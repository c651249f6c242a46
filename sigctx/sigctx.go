package sigctx

import (
	"context"
	"os"
	"os/signal"
)

// New returns a context that is canceled on SIGINT.
func New() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx
}
