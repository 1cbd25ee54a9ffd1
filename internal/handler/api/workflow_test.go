//go:build unit

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/handler/api"
	resdto "slot-hold-gateway/internal/handler/dto/response"
	"slot-hold-gateway/internal/infra"
	"slot-hold-gateway/internal/pkg/clock"
	"slot-hold-gateway/internal/pkg/config"
	"slot-hold-gateway/internal/usecase"
	"slot-hold-gateway/tests/common/builder"
	"slot-hold-gateway/tests/common/httptest"
	upstreammock "slot-hold-gateway/tests/mock/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WorkflowHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	slots    *upstreammock.MockSlotService
	registry *usecase.Registry
	handler  *api.WorkflowHandler
}

func (s *WorkflowHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.slots = upstreammock.NewMockSlotService(s.mockCtrl)

	// background availability refreshes may fire any number of times
	s.slots.EXPECT().GetScheduleRange(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, usecase.ScheduleQuery) (*schedule.Snapshot, error) {
			return builder.NewScheduleBuilder().
				WithShift("shift-am", "Morning", "08:00", "12:00").
				BuildSnapshot(), nil
		}).AnyTimes()

	cfg := config.NewTestConfig()
	cfg.Hold.PollInterval = time.Hour
	cfg.Hold.TickInterval = time.Hour
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.registry = usecase.NewRegistry(s.slots, clock.NewMockClock(builder.VNTime("07:00")), logger, cfg)
	s.handler = api.NewWorkflowHandler(s.registry)

	s.router.POST("/api/workflows", s.handler.Create)
	s.router.GET("/api/workflows/:id", s.handler.Get)
	s.router.DELETE("/api/workflows/:id", s.handler.Delete)
	s.router.PUT("/api/workflows/:id/selection", s.handler.UpdateSelection)
	s.router.GET("/api/workflows/:id/schedule", s.handler.GetSchedule)
	s.router.POST("/api/workflows/:id/hold", s.handler.AcquireHold)
	s.router.DELETE("/api/workflows/:id/hold", s.handler.ReleaseHold)
	s.router.POST("/api/workflows/:id/confirm", s.handler.Confirm)
}

func (s *WorkflowHandlerTestSuite) TearDownTest() {
	s.registry.Shutdown()
	s.mockCtrl.Finish()
}

func TestWorkflowHandlerSuite(t *testing.T) {
	suite.Run(t, new(WorkflowHandlerTestSuite))
}

func (s *WorkflowHandlerTestSuite) createWorkflow(date string) string {
	sel := builder.BuildSelection(30 * time.Minute)
	body := map[string]any{
		"doctorId":           sel.DoctorID.String(),
		"serviceId":          sel.ServiceID.String(),
		"serviceDurationMin": 30,
		"appointmentFor":     "self",
	}
	if date != "" {
		body["date"] = date
	}

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows", body)

	var resp resdto.WorkflowResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
	return resp.WorkflowID.String()
}

func (s *WorkflowHandlerTestSuite) expectAcquire(timeslotID string) {
	start := builder.VNTime("08:30")
	gomock.InOrder(
		s.slots.EXPECT().ValidateTime(gomock.Any(), gomock.Any()).
			Return(&usecase.ValidateTimeResult{EndTime: start.Add(30 * time.Minute)}, nil),
		s.slots.EXPECT().ReserveSlot(gomock.Any(), gomock.Any()).
			Return(&usecase.ReservedSlot{
				TimeslotID:       timeslotID,
				StartTime:        start,
				EndTime:          start.Add(30 * time.Minute),
				ExpiresAt:        start,
				DoctorScheduleID: "sched-20260901",
			}, nil),
	)
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestCreate() {
	s.Run("success: 201 with a workflow id and polling enabled", func() {
		sel := builder.BuildSelection(30 * time.Minute)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows", map[string]any{
			"doctorId":           sel.DoctorID.String(),
			"serviceId":          sel.ServiceID.String(),
			"serviceDurationMin": 30,
			"date":               builder.ScheduleDate,
		})

		var resp resdto.WorkflowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.NotEmpty(resp.WorkflowID)
		s.True(resp.Polling)
		s.Nil(resp.Hold)
	})

	s.Run("success: date is optional, polling stays off without it", func() {
		sel := builder.BuildSelection(30 * time.Minute)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows", map[string]any{
			"doctorId":           sel.DoctorID.String(),
			"serviceId":          sel.ServiceID.String(),
			"serviceDurationMin": 30,
		})

		var resp resdto.WorkflowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.False(resp.Polling)
	})

	s.Run("error: 400 on missing doctorId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows", map[string]any{
			"serviceId":          builder.BuildSelection(30 * time.Minute).ServiceID.String(),
			"serviceDurationMin": 30,
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on malformed date", func() {
		sel := builder.BuildSelection(30 * time.Minute)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows", map[string]any{
			"doctorId":           sel.DoctorID.String(),
			"serviceId":          sel.ServiceID.String(),
			"serviceDurationMin": 30,
			"date":               "01-09-2026",
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestGet() {
	s.Run("success: 200 with current state", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/"+id, nil)

		var resp resdto.WorkflowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(id, resp.WorkflowID.String())
		s.Equal(builder.ScheduleDate, resp.Selection.Date)
	})

	s.Run("error: 404 for unknown workflow", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/5b6962dd-3f90-4c93-8f61-eabfa4a803e2", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Workflow not found")
	})

	s.Run("error: 400 for malformed workflow id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid workflow ID format")
	})
}

// ================================================================================
// TestUpdateSelection
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestUpdateSelection() {
	s.Run("success: 200 and the patched selection", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/workflows/"+id+"/selection", map[string]any{
			"appointmentFor": "family-member",
		})

		var resp resdto.WorkflowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("family-member", resp.Selection.AppointmentFor)
		s.Equal(builder.ScheduleDate, resp.Selection.Date)
	})

	s.Run("success: changing the date supersedes an active hold", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		s.expectAcquire("ts-1")
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "08:30"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		s.slots.EXPECT().ReleaseSlot(gomock.Any(), "ts-1").Return(nil)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/workflows/"+id+"/selection", map[string]any{
			"date": "2026-09-02",
		})

		var resp resdto.WorkflowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Nil(resp.Hold)
		s.Require().NotNil(resp.LastEvent)
		s.Equal("superseded", resp.LastEvent.Type)
	})

	s.Run("error: 400 on invalid duration", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/workflows/"+id+"/selection", map[string]any{
			"serviceDurationMin": 0,
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

// ================================================================================
// TestGetSchedule
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestGetSchedule() {
	s.Run("success: 200 with shift and gap clocks", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/"+id+"/schedule", nil)

		var resp resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("sched-20260901", resp.DoctorScheduleID)
		s.Require().Len(resp.ScheduleRanges, 1)
		s.Equal("shift-am", resp.ScheduleRanges[0].ID)
		s.Require().Len(resp.ScheduleRanges[0].AvailableGaps, 1)
		s.Equal("08:00", resp.ScheduleRanges[0].AvailableGaps[0].StartClock)
		s.Equal("12:00", resp.ScheduleRanges[0].AvailableGaps[0].EndClock)
	})

	s.Run("error: 400 when the selection is incomplete", func() {
		id := s.createWorkflow("")
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/"+id+"/schedule", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestAcquireHold
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestAcquireHold() {
	s.Run("success: 201 with the held slot", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		s.expectAcquire("ts-1")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "08:30"})

		var resp resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal("ts-1", resp.TimeslotID)
		s.Equal("active", resp.Status)
		s.Equal("08:30", resp.StartClock)
		s.Equal("09:00", resp.EndClock)
		// expiry at 08:30 minus the injected clock's 07:00, never wall time
		s.Equal(5400, resp.RemainingSeconds)

		s.slots.EXPECT().ReleaseSlot(gomock.Any(), "ts-1").Return(nil)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/workflows/"+id+"/hold", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on missing time", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on malformed time", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "0830"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "HH:MM")
	})

	s.Run("error: 400 on past time", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "06:00"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "past")
	})

	s.Run("error: 422 outside working hours", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "18:00"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "outside working hours")
	})

	s.Run("error: 400 when the selection is incomplete", func() {
		id := s.createWorkflow("")
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "08:30"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 with the backend's message on conflict", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		s.slots.EXPECT().ValidateTime(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapUpstreamErr(logger, infra.KindConflict,
				"validate time rejected", "Doctor is fully booked at this time", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "08:30"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Doctor is fully booked at this time")
	})

	s.Run("error: 502 when the backend is unavailable", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		s.slots.EXPECT().ValidateTime(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapUpstreamErr(logger, infra.KindUnavailable,
				"validate time failed", "", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "08:30"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Booking backend unavailable")
	})
}

// ================================================================================
// TestReleaseHold
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestReleaseHold() {
	s.Run("success: 204 without a hold is a no-op", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/workflows/"+id+"/hold", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

// ================================================================================
// TestConfirm
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestConfirm() {
	s.Run("success: 200 and the hold is consumed without a release", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		s.expectAcquire("ts-1")
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/hold", map[string]any{"time": "08:30"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/confirm", nil)

		var resp resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("ts-1", resp.TimeslotID)

		var state resdto.WorkflowResponse
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/"+id, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &state)
		s.Nil(state.Hold)
	})

	s.Run("error: 409 without an active hold", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/workflows/"+id+"/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "No active hold to confirm")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *WorkflowHandlerTestSuite) TestDelete() {
	s.Run("success: 204 and the workflow is gone", func() {
		id := s.createWorkflow(builder.ScheduleDate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/workflows/"+id, nil)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/workflows/"+id, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Workflow not found")
	})

	s.Run("error: 404 for unknown workflow", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/workflows/5b6962dd-3f90-4c93-8f61-eabfa4a803e2", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Workflow not found")
	})
}
