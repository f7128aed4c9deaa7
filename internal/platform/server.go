package platform

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
)

// NewShutdownContext creates a context that is canceled on the platform's stop signals
func NewShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// Serve runs server until ctx is canceled, then drains in-flight requests for up to drainTimeout.
// A listener failure is returned immediately.
func Serve(ctx context.Context, server *http.Server, drainTimeout time.Duration, logger *logrus.Logger) error {
	listenErrors := make(chan error, 1)
	go func() {
		logger.WithField("addr", server.Addr).Info("Starting gateway")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErrors <- err
		}
		close(listenErrors)
	}()

	select {
	case err := <-listenErrors:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
