package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/suggestbox/cliparse"
	"github.com/danielhkuo/suggestbox/db"
	"github.com/danielhkuo/suggestbox/middleware"
	"github.com/danielhkuo/suggestbox/router"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the store (connects, pings, creates schema)
	store, err := db.Open(cfg)
	if err != nil {
		slog.Error("store open failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Database schema ready", "driver", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(store)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
