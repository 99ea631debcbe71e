package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rl1809/gilded-rose/internal/core/domain"
	"github.com/rl1809/gilded-rose/internal/core/service"
	"github.com/rl1809/gilded-rose/internal/port"
)

const maxBodyBytes = 1 << 20

type HTTPHandler struct {
	simulations *service.SimulationService
	source      port.ItemSource
	validate    *validator.Validate
	logger      *zap.Logger
}

type SeedHTTP struct {
	Name    string `json:"name" validate:"required"`
	SellIn  int    `json:"sell_in" validate:"gte=-2147483648,lte=2147483647"`
	Quality int    `json:"quality" validate:"gte=0"`
}

type SimulateHTTPRequest struct {
	Items []SeedHTTP `json:"items" validate:"required,min=1,dive"`
	Days  int        `json:"days" validate:"gte=0"`
}

type ErrorHTTPResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewHTTPHandler(simulations *service.SimulationService, source port.ItemSource, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		simulations: simulations,
		source:      source,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (h *HTTPHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateHTTPRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "invalid request body"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{
			Message: "invalid request",
			Fields:  formatValidationError(err),
		})
		return
	}

	seeds := make([]domain.Seed, len(req.Items))
	for i, it := range req.Items {
		seeds[i] = domain.Seed{Name: it.Name, SellIn: it.SellIn, Quality: it.Quality}
	}
	h.run(w, r, seeds, req.Days)
}

// Fixture simulates the configured item source; days comes from the query string.
func (h *HTTPHandler) Fixture(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "days must be an integer"})
			return
		}
		days = n
	}

	seeds, err := h.source.LoadSeeds(r.Context())
	if err != nil {
		h.logger.Error("load seeds failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Message: "item source unavailable"})
		return
	}
	h.run(w, r, seeds, days)
}

func (h *HTTPHandler) run(w http.ResponseWriter, r *http.Request, seeds []domain.Seed, days int) {
	sim, err := h.simulations.Simulate(r.Context(), service.SimulationRequest{Items: seeds, Days: days})
	if err != nil {
		status, message := http.StatusInternalServerError, "internal error"
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			status, message = http.StatusBadRequest, err.Error()
		case errors.Is(err, service.ErrTooManyDays):
			status, message = http.StatusBadRequest, fmt.Sprintf("days must not exceed %d", h.simulations.MaxDays())
		default:
			h.logger.Error("simulation failed", zap.Error(err))
		}
		writeJSON(w, status, ErrorHTTPResponse{Message: message})
		return
	}

	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Simulation-ID", sim.ID)
		w.WriteHeader(http.StatusOK)
		_ = WriteDays(w, sim.Reports)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WriteDays renders reports in the day-by-day text fixture format.
func WriteDays(w io.Writer, reports []domain.Report) error {
	for _, report := range reports {
		if _, err := fmt.Fprintf(w, "-------- day %d --------\n", report.Day); err != nil {
			return err
		}
		if _, err := report.WriteTo(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func wantsText(r *http.Request) bool {
	if r.URL.Query().Get("format") == "text" {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Accept"), "text/plain")
}

func formatValidationError(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["error"] = "invalid request format"
		return fields
	}

	for _, e := range verrs {
		key := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			fields[key] = "this field is required"
		case "min":
			fields[key] = fmt.Sprintf("must contain at least %s entries", e.Param())
		case "gte":
			fields[key] = fmt.Sprintf("must be at least %s", e.Param())
		case "lte":
			fields[key] = fmt.Sprintf("must be at most %s", e.Param())
		default:
			fields[key] = "invalid value"
		}
	}
	return fields
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
