// app/start.go

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
)

// Start serves HTTP until ctx is cancelled or a shutdown signal arrives, then
// closes the application.
func (app *App) Start(ctx context.Context) error {
	app.logger.InfoContext(ctx, "Starting server", attr.String("address", app.Server.Addr))

	serveErr := make(chan error, 1)
	go func() {
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	case <-app.WaitForShutdown(ctx):
	}

	// The parent context may already be cancelled; shutdown gets its own deadline.
	if err := app.Close(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
