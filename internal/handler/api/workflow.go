package api

import (
	"errors"
	"net/http"

	"slot-hold-gateway/internal/domain/schedule"
	reqdto "slot-hold-gateway/internal/handler/dto/request"
	resdto "slot-hold-gateway/internal/handler/dto/response"
	"slot-hold-gateway/internal/handler/httperr"
	"slot-hold-gateway/internal/infra"
	"slot-hold-gateway/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkflowHandler struct {
	flows *usecase.Registry
}

func NewWorkflowHandler(flows *usecase.Registry) *WorkflowHandler {
	return &WorkflowHandler{
		flows: flows,
	}
}

// @Summary Create booking workflow
// @Description Create a workflow session for the appointment booking/reschedule flow
// @Tags workflows
// @Accept json
// @Produce json
// @Param request body reqdto.CreateWorkflowRequest true "Initial selection"
// @Success 201 {object} resdto.WorkflowResponse
// @Failure 400 {object} httperr.Response
// @Router /workflows [post]
func (h *WorkflowHandler) Create(c *gin.Context) {
	var req reqdto.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	w := h.flows.Create(req.ToSelection())
	c.JSON(http.StatusCreated, resdto.FromWorkflowState(w.State()))
}

// @Summary Get workflow state
// @Description Current selection, hold (with remaining seconds), and last lease event
// @Tags workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} resdto.WorkflowResponse
// @Failure 404 {object} httperr.Response
// @Router /workflows/{id} [get]
func (h *WorkflowHandler) Get(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromWorkflowState(w.State()))
}

// @Summary Update selection
// @Description Change doctor/service/date/duration. Changing any of them supersedes an active hold.
// @Tags workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body reqdto.UpdateSelectionRequest true "Selection patch"
// @Success 200 {object} resdto.WorkflowResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /workflows/{id}/selection [put]
func (h *WorkflowHandler) UpdateSelection(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var req reqdto.UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	w.UpdateSelection(c.Request.Context(), req.ToPatch())
	c.JSON(http.StatusOK, resdto.FromWorkflowState(w.State()))
}

// @Summary Get schedule availability
// @Description Current shift/gap snapshot for the selected doctor+service+date
// @Tags workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Param refresh query bool false "Force a reload from the booking backend"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /workflows/{id}/schedule [get]
func (h *WorkflowHandler) GetSchedule(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	snap, err := w.Schedule(c.Request.Context(), c.Query("refresh") == "1" || c.Query("refresh") == "true")
	if err != nil {
		h.abortWithHoldError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}

// @Summary Acquire slot hold
// @Description Validate the candidate time locally and reserve a TTL-bound hold on the backend
// @Tags workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body reqdto.AcquireHoldRequest true "Candidate time (HH:MM, VN local)"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /workflows/{id}/hold [post]
func (h *WorkflowHandler) AcquireHold(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var req reqdto.AcquireHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	l, err := w.AcquireHold(c.Request.Context(), req.Time)
	if err != nil {
		h.abortWithHoldError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromLease(l, w.State().Remaining))
}

// @Summary Release slot hold
// @Description Free the held slot immediately instead of waiting out its TTL. No-op without a hold.
// @Tags workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /workflows/{id}/hold [delete]
func (h *WorkflowHandler) ReleaseHold(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	if err := w.ReleaseHold(c.Request.Context()); err != nil {
		h.abortWithHoldError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Confirm hold
// @Description Consume the active hold after the parent booking request succeeded
// @Tags workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /workflows/{id}/confirm [post]
func (h *WorkflowHandler) Confirm(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	l, err := w.Confirm()
	if err != nil {
		if errors.Is(err, usecase.ErrNoActiveHold) {
			httperr.AbortWithError(c, http.StatusConflict, err, "No active hold to confirm", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLease(l, 0))
}

// @Summary Tear down workflow
// @Description Stop timers and fire-and-forget release any active hold
// @Tags workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /workflows/{id} [delete]
func (h *WorkflowHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid workflow ID format", nil)
		return
	}
	if !h.flows.Remove(id) {
		httperr.AbortWithError(c, http.StatusNotFound, usecase.ErrNoActiveHold, "Workflow not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkflowHandler) workflow(c *gin.Context) (*usecase.Workflow, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid workflow ID format", nil)
		return nil, false
	}
	w, ok := h.flows.Get(id)
	if !ok {
		httperr.AbortWithError(c, http.StatusNotFound, errors.New("workflow not found"), "Workflow not found", nil)
		return nil, false
	}
	return w, true
}

func (h *WorkflowHandler) abortWithHoldError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrMalformedTime),
		errors.Is(err, schedule.ErrHourOutOfRange),
		errors.Is(err, schedule.ErrMinuteOutOfRange),
		errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrPastTime):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errors.Is(err, schedule.ErrOutsideWorkingHours),
		errors.Is(err, schedule.ErrInsufficientWindow):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	case errors.Is(err, usecase.ErrSelectionIncomplete):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errors.Is(err, usecase.ErrSuperseded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request superseded by a newer one", nil)
	case infra.IsKind(err, infra.KindConflict):
		msg := infra.ServerMessage(err)
		if msg == "" {
			msg = "Time slot is no longer available"
		}
		// The backend sees concurrent holds from other users; its message is
		// authoritative.
		httperr.AbortWithError(c, http.StatusConflict, err, msg, nil)
	case infra.IsKind(err, infra.KindUnavailable), infra.IsKind(err, infra.KindNetwork), infra.IsKind(err, infra.KindBadResponse):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Booking backend unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
