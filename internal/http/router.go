package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	receiptHandler "receiptpoints/internal/http/receipt"
)

func New(receiptsV1 *receiptHandler.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Get("/", index)
	router.Get("/healthz", healthz)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/receipts", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		receiptsV1.Routes(r)
	})

	return router
}

func index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(map[string]string{
		"service": "receiptpoints",
		"submit":  "POST /receipts/process",
		"points":  "GET /receipts/{id}/points",
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
