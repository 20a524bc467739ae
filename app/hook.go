package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
)

// WaitForShutdown returns a channel closed on SIGINT, SIGTERM or ctx cancellation.
func (app *App) WaitForShutdown(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(done)
		defer signal.Stop(interrupt)

		app.logger.InfoContext(ctx, "Waiting for shutdown signal")
		select {
		case sig := <-interrupt:
			app.logger.InfoContext(ctx, "Received shutdown signal", attr.String("signal", sig.String()))
		case <-ctx.Done():
			app.logger.InfoContext(ctx, "Application context canceled")
		}
	}()
	return done
}
