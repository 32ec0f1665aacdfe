package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// StartWithGracefulShutdown runs the server until SIGINT/SIGTERM, then drains
// in-flight requests and executes the hooks before returning.
func StartWithGracefulShutdown(
	server *http.Server,
	log *logger.Logger,
	serviceName string,
	hooks ...ShutdownHook,
) {
	go func() {
		log.Infof("%s listening on %s", serviceName, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start %s: %v", serviceName, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("shutting down %s...", serviceName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	server.SetKeepAlivesEnabled(false)

	for i, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			log.Errorf("%s: shutdown hook %d failed: %v", serviceName, i, err)
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s forced to shutdown: %v", serviceName, err)
	} else {
		log.Infof("%s stopped gracefully", serviceName)
	}
}
