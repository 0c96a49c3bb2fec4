package incident

import (
	"encoding/json"
	"net/http"
	"strconv"

	"statusdeck/pkg/apperror"
	"statusdeck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const defaultWindowDays = 30

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

// POST /incidents
func (h *Handler) OpenIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req OpenIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	componentID, err := uuid.Parse(req.ComponentID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid component id")
		return
	}

	incidentID, err := h.service.Open(ctx, OpenIncidentCmd{
		ComponentID: componentID,
		Title:       req.Title,
		Impact:      Impact(req.Impact),
		StartedAt:   req.StartedAt,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, "incident opened", incidentID.String())
}

// PATCH /incidents/{incidentID}/resolve
func (h *Handler) ResolveIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	incidentID, err := uuid.Parse(chi.URLParam(r, "incidentID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid incident id")
		return
	}

	inc, err := h.service.Resolve(ctx, incidentID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "incident resolved", IncidentResponse{
		ID:          inc.ID.String(),
		ComponentID: inc.ComponentID.String(),
		Title:       inc.Title,
		Impact:      string(inc.Impact),
		StartedAt:   inc.StartedAt,
		ResolvedAt:  inc.ResolvedAt,
	})
}

// GET /incidents/metrics/impact?days=30
func (h *Handler) GetCountsByImpact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	days, err := parseDays(r, defaultWindowDays)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	counts, err := h.service.CountsByImpact(ctx, days)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", ImpactCountsResponse{
		Days:   days,
		Counts: counts,
	})
}

// GET /incidents/metrics/mttr?days=30
func (h *Handler) GetMTTR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	days, err := parseDays(r, defaultWindowDays)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	report, err := h.service.MTTR(ctx, days)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := MTTRResponse{
		Days:          days,
		ResolvedCount: report.ResolvedCount,
	}
	if report.HasData {
		secs := report.Mean.Seconds()
		resp.MTTRSeconds = &secs
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func parseDays(r *http.Request, fallback int) (int, error) {
	daysStr := r.URL.Query().Get("days")
	if daysStr == "" {
		return fallback, nil
	}
	return strconv.Atoi(daysStr)
}
