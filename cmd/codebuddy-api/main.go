package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/codebuddy/codebuddy-go/internal/config"
	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/server"
	"github.com/codebuddy/codebuddy-go/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.L.Error("failed to open conversation store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	srv := server.New(st)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting conversation store API", "address", serverAddr, "db", cfg.Store.Path)
	if err := http.ListenAndServe(serverAddr, srv.Routes()); err != nil {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
