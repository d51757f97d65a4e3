package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"receiptpoints/internal/observability/metrics"
	"receiptpoints/internal/receipt"
)

// The two externally visible failure messages. Internal detail never
// reaches a response body.
const (
	msgInvalidReceipt = "The receipt is invalid."
	msgNotFound       = "No receipt found for that ID."
)

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/process", h.process)
	r.Get("/{id}/points", h.points)
	r.MethodNotAllowed(h.methodNotAllowed)
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		metrics.ObserveIntake(metrics.ResultInvalid, time.Since(start))
		http.Error(w, msgInvalidReceipt, http.StatusBadRequest)

		return
	}

	id, err := h.svc.Process(r.Context(), body)
	if err != nil {
		var vErr *receipt.ValidationError
		if errors.As(err, &vErr) {
			slog.Info("rejected receipt", "reason", vErr.Error())
			metrics.ObserveIntake(metrics.ResultInvalid, time.Since(start))
			http.Error(w, msgInvalidReceipt, http.StatusBadRequest)

			return
		}

		slog.Error("failed to process receipt", "error", err)
		metrics.ObserveIntake(metrics.ResultError, time.Since(start))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	metrics.ObserveIntake(metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(processResponse{ID: id}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) points(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	points, err := h.svc.Points(r.Context(), id)
	if err != nil {
		if errors.Is(err, receipt.ErrNotFound) {
			metrics.ObservePoints(metrics.ResultNotFound, time.Since(start))
			http.Error(w, msgNotFound, http.StatusNotFound)

			return
		}

		slog.Error("failed to look up points", "error", err)
		metrics.ObservePoints(metrics.ResultError, time.Since(start))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	metrics.ObservePoints(metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(pointsResponse{Points: points}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	required := "POST"
	if strings.HasSuffix(r.URL.Path, "/points") {
		required = "GET"
	}

	http.Error(w, "Invalid request method, this can only take "+required, http.StatusBadRequest)
}
