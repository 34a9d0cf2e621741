package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Gren-95/FinanceFlux/internal/logutil"
)

// ShutdownGrace is how long in-flight requests get once ctx is cancelled.
const ShutdownGrace = time.Minute

// Serve listens on bind and serves handler until ctx is cancelled.
func Serve(ctx context.Context, bind string, handler http.Handler) error {
	lis, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("unable to listen on %v, cause %w", bind, err)
	}
	return ServeListener(ctx, lis, handler)
}

// ServeListener serves handler on lis until ctx is cancelled, then shuts the
// server down gracefully. lis is closed when it returns.
func ServeListener(ctx context.Context, lis net.Listener, handler http.Handler) error {
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", lis.Addr().String()).Logger()
	server := &http.Server{
		Handler:           handler,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute * 5,
		BaseContext: func(net.Listener) context.Context {
			return logutil.WithLogger(context.Background(), log)
		},
	}

	served := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting HTTP server")
		served <- server.Serve(lis)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Initiating shutdown process")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shutdown server, cause %w", err)
	}
	// Serve returns ErrServerClosed right after Shutdown starts
	<-served
	log.Info().Msg("Shutdown completed")
	return nil
}
