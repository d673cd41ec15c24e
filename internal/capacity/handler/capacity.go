package handler

import (
	"net/http"

	"pitstop/internal/capacity/service"
	apperrors "pitstop/pkg/errors"
	httputil "pitstop/pkg/http"
	"pitstop/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CapacityHandler struct {
	service service.CapacityService
	log     *logger.Logger
}

func NewCapacityHandler(service service.CapacityService, log *logger.Logger) *CapacityHandler {
	return &CapacityHandler{
		service: service,
		log:     log,
	}
}

func (h *CapacityHandler) CapacityForDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")

	capacity, err := h.service.CapacityForDate(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CapacityForDate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, capacity); err != nil {
		h.log.Error("failed to write success response", "handler", "CapacityForDate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CapacityHandler) Statistics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	start := query.Get("start")
	end := query.Get("end")

	if start == "" || end == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Both 'start' and 'end' query parameters are required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Statistics", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	stats, err := h.service.StatisticsForRange(r.Context(), start, end)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Statistics", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Statistics", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CapacityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/capacity/:date", h.CapacityForDate)
	router.GET("/api/v1/statistics", h.Statistics)
}
