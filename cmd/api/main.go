package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"receiptpoints/internal/config"
	"receiptpoints/internal/database"
	rpHttp "receiptpoints/internal/http"
	receiptHandler "receiptpoints/internal/http/receipt"
	"receiptpoints/internal/observability/metrics"
	"receiptpoints/internal/receipt"
	receiptStore "receiptpoints/internal/receipt/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var repo receipt.Repository

	switch cfg.Storage.Driver {
	case "bolt":
		bolt, err := receiptStore.NewBolt(cfg.Storage.BoltPath)
		if err != nil {
			slog.Error("failed to open bolt store", "error", err)
			os.Exit(1)
		}
		defer bolt.Close()

		repo = bolt
	default:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		store := receiptStore.New(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		repo = store
	}

	metrics.Init()

	receiptService := receipt.NewService(repo)
	receiptH := receiptHandler.NewHandler(receiptService)

	router := rpHttp.New(receiptH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "storage", cfg.Storage.Driver)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
