package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dori/taskflow/internal/logging"
)

// shutdownTimeout bounds graceful shutdown once the context is canceled.
const shutdownTimeout = 5 * time.Second

// Run listens on bind and serves handler until ctx is canceled.
func Run(ctx context.Context, bind string, handler http.Handler, log logging.Logger) error {
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", bind, err)
	}
	return Serve(ctx, ln, handler, log)
}

// Serve serves handler on ln until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, log logging.Logger) error {
	if log == nil {
		log = logging.Discard()
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- srv.Serve(ln)
	}()
	log.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-serveErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr := srv.Shutdown(shutdownCtx)
		serveErr := <-serveErrCh
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) {
			return fmt.Errorf("shutdown server: %w", shutdownErr)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve after shutdown: %w", serveErr)
		}
		log.Info("server stopped")
		return nil
	}
}
