package component

import (
	"encoding/json"
	"net/http"

	"statusdeck/internals/modules/uptime"
	"statusdeck/pkg/apperror"
	"statusdeck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

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

// GET /components
func (h *Handler) ListComponents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	comps, err := h.service.List(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	out := make([]ComponentResponse, 0, len(comps))
	for i := range comps {
		out = append(out, toResponse(&comps[i]))
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", out)
}

// GET /components/{componentID}
func (h *Handler) GetComponent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid component id")
		return
	}

	comp, err := h.service.Get(ctx, componentID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toResponse(&comp))
}

// POST /components
func (h *Handler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	componentID, err := h.service.Create(ctx, CreateComponentCmd{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, "component created", componentID.String())
}

// PATCH /components/{componentID}/status
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid component id")
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	cmd := ChangeStatusCmd{
		ComponentID: componentID,
		NewStatus:   uptime.Status(req.Status),
	}
	if req.IncidentID != "" {
		incidentID, err := uuid.Parse(req.IncidentID)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid incident id")
			return
		}
		cmd.IncidentID = &incidentID
	}

	if err := h.service.ChangeStatus(ctx, cmd); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON[any](w, http.StatusOK, reqID, "component status updated", nil)
}

func toResponse(comp *Component) ComponentResponse {
	return ComponentResponse{
		ID:            comp.ID.String(),
		Name:          comp.Name,
		Description:   comp.Description,
		CurrentStatus: string(comp.CurrentStatus),
		Enabled:       comp.Enabled,
		CreatedAt:     comp.CreatedAt,
	}
}
