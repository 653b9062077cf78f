// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/uno-arena/server/internal/handlers"
	"github.com/uno-arena/server/internal/journal"
	"github.com/uno-arena/server/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	if os.Getenv("LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	j, err := journal.Connect()
	if err != nil {
		logger.WithError(err).Warn("action journal disabled")
		j = nil
	}

	srv := handlers.NewServer(logger, j)
	started := time.Now()

	mux := http.NewServeMux()

	// health check for load balancers
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"uptime": time.Since(started).Seconds(),
		})
	})

	// game websocket
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.GameWSHandler(srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	httpSrv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Infof("Running on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server exited: %v", err)
		}
	}()

	// graceful shutdown: stop accepting connections, then let the open
	// websockets drain out with the server's shutdown context
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	logger.Infof("%s received: closing HTTP server", received)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("shutdown did not complete cleanly")
	}
	logger.Info("HTTP server closed")
}
