package uptime

import (
	"net/http"
	"strconv"

	"statusdeck/pkg/apperror"
	"statusdeck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const defaultWindowDays = 30

type Handler struct {
	service  *Service
	recorder *Recorder
}

func NewHandler(service *Service, recorder *Recorder) *Handler {
	return &Handler{
		service:  service,
		recorder: recorder,
	}
}

// GET /components/{componentID}/uptime?days=30&mode=weighted&maintenance_down=false
func (h *Handler) GetComponentUptime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid component id")
		return
	}

	days, err := parseDays(r, defaultWindowDays)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	mode := CalculationMode(r.URL.Query().Get("mode"))
	maintenanceDown := r.URL.Query().Get("maintenance_down") == "true"

	report, err := h.service.ComponentUptime(ctx, componentID, days, mode, maintenanceDown)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", UptimeResponse{
		ComponentID:      report.ComponentID.String(),
		UptimePercentage: report.UptimePercentage,
		PeriodStart:      report.PeriodStart,
		PeriodEnd:        report.PeriodEnd,
		Mode:             string(report.Mode),
	})
}

// GET /components/{componentID}/timeline?days=90
func (h *Handler) GetDailyTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid component id")
		return
	}

	days, err := parseDays(r, defaultWindowDays)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	buckets, err := h.service.DailyTimeline(ctx, componentID, days)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", TimelineResponse{
		ComponentID: componentID.String(),
		Days:        days,
		Timeline:    buckets,
	})
}

// GET /timeline?days=90 — worst status per day across all enabled components
func (h *Handler) GetAggregatedTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	days, err := parseDays(r, defaultWindowDays)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	buckets, err := h.service.AggregatedTimeline(ctx, days)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", TimelineResponse{
		Days:     days,
		Timeline: buckets,
	})
}

// POST /snapshots — external scheduler entrypoint, safe to call repeatedly
func (h *Handler) RunDailySnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	count, err := h.recorder.LogDailySnapshot(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "daily snapshot recorded", SnapshotResponse{Count: count})
}

// DELETE /cache?scope={scope}&days={days}
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "scope is required")
		return
	}
	days, err := parseDays(r, 0)
	if err != nil || days < 1 {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "days is required")
		return
	}

	if err := h.service.Invalidate(ctx, scope, days); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON[any](w, http.StatusOK, reqID, "cache entry invalidated", nil)
}

func parseDays(r *http.Request, fallback int) (int, error) {
	daysStr := r.URL.Query().Get("days")
	if daysStr == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return 0, err
	}
	return days, nil
}
