// Package upstream is the HTTP client for the hospital booking backend that
// owns availability snapshots and slot holds.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/infra"
	"slot-hold-gateway/internal/pkg/config"
	"slot-hold-gateway/internal/pkg/errs"
	"slot-hold-gateway/internal/usecase"
)

// Client implements usecase.SlotService against the booking backend's JSON
// API.
type Client struct {
	baseURL    string
	apiKey     string
	keyHeader  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(cfg config.UpstreamConfig, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		keyHeader: cfg.KeyHeader,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type validateTimeBody struct {
	DoctorID  string `json:"doctorId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

type validateTimeData struct {
	EndTime time.Time `json:"endTime"`
}

func (c *Client) ValidateTime(ctx context.Context, in usecase.ValidateTimeInput) (*usecase.ValidateTimeResult, error) {
	body := validateTimeBody{
		DoctorID:  in.DoctorID.String(),
		ServiceID: in.ServiceID.String(),
		Date:      in.Date,
		StartTime: in.StartTime.Format(time.RFC3339),
	}

	var data validateTimeData
	if err := c.post(ctx, "/api/appointments/validate-time", body, &data); err != nil {
		return nil, err
	}
	return &usecase.ValidateTimeResult{EndTime: data.EndTime}, nil
}

type reserveSlotBody struct {
	DoctorUserID     string `json:"doctorUserId"`
	ServiceID        string `json:"serviceId"`
	DoctorScheduleID string `json:"doctorScheduleId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	AppointmentFor   string `json:"appointmentFor"`
}

type reserveSlotData struct {
	TimeslotID       string    `json:"timeslotId"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	ExpiresAt        time.Time `json:"expiresAt"`
	DoctorScheduleID string    `json:"doctorScheduleId"`
}

func (c *Client) ReserveSlot(ctx context.Context, in usecase.ReserveSlotInput) (*usecase.ReservedSlot, error) {
	body := reserveSlotBody{
		DoctorUserID:     in.DoctorUserID.String(),
		ServiceID:        in.ServiceID.String(),
		DoctorScheduleID: in.DoctorScheduleID,
		Date:             in.Date,
		StartTime:        in.StartTime.Format(time.RFC3339),
		AppointmentFor:   in.AppointmentFor,
	}

	var data reserveSlotData
	if err := c.post(ctx, "/api/timeslots/reserve", body, &data); err != nil {
		return nil, err
	}
	return &usecase.ReservedSlot{
		TimeslotID:       data.TimeslotID,
		StartTime:        data.StartTime,
		EndTime:          data.EndTime,
		ExpiresAt:        data.ExpiresAt,
		DoctorScheduleID: data.DoctorScheduleID,
	}, nil
}

type releaseSlotBody struct {
	TimeslotID string `json:"timeslotId"`
}

func (c *Client) ReleaseSlot(ctx context.Context, timeslotID string) error {
	return c.post(ctx, "/api/timeslots/release", releaseSlotBody{TimeslotID: timeslotID}, nil)
}

type scheduleRangeData struct {
	DoctorScheduleID string              `json:"doctorScheduleId"`
	ScheduleRanges   []scheduleRangeItem `json:"scheduleRanges"`
}

type scheduleRangeItem struct {
	ID                 string    `json:"id"`
	Label              string    `json:"label"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	IsExhausted        bool      `json:"isExhausted"`
	IsPastWorkingHours bool      `json:"isPastWorkingHours"`
	AvailableGaps      []gapItem `json:"availableGaps"`
}

type gapItem struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func (c *Client) GetScheduleRange(ctx context.Context, q usecase.ScheduleQuery) (*schedule.Snapshot, error) {
	params := url.Values{}
	params.Set("serviceId", q.ServiceID.String())
	params.Set("date", q.Date)
	if q.AppointmentFor != "" {
		params.Set("appointmentFor", q.AppointmentFor)
	}
	path := "/api/doctors/" + q.DoctorID.String() + "/schedule-range?" + params.Encode()

	var data scheduleRangeData
	if err := c.get(ctx, path, &data); err != nil {
		return nil, err
	}

	ranges := make([]schedule.ScheduleRange, len(data.ScheduleRanges))
	for i, r := range data.ScheduleRanges {
		gaps := make([]schedule.AvailableGap, len(r.AvailableGaps))
		for j, g := range r.AvailableGaps {
			gaps[j] = schedule.AvailableGap{Start: g.StartTime, End: g.EndTime}
		}
		ranges[i] = schedule.ScheduleRange{
			ID:               r.ID,
			Label:            r.Label,
			Start:            r.StartTime,
			End:              r.EndTime,
			Exhausted:        r.IsExhausted,
			PastWorkingHours: r.IsPastWorkingHours,
			Gaps:             gaps,
		}
	}
	return &schedule.Snapshot{
		DoctorScheduleID: data.DoctorScheduleID,
		Ranges:           ranges,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return infra.WrapUpstreamErr(c.logger, infra.KindNetwork, "booking backend unreachable", "", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return infra.WrapUpstreamErr(c.logger, infra.KindUnavailable, "booking backend error: "+resp.Status, "", nil)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return infra.WrapUpstreamErr(c.logger, infra.KindBadResponse, "failed to decode response", "", err)
	}

	// Rejections (slot taken, validation lost to a concurrent hold) arrive as
	// success=false with the backend's own message; that message wins over any
	// local inference.
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return infra.WrapUpstreamErr(c.logger, infra.KindConflict, "booking backend rejected request", env.Message, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return infra.WrapUpstreamErr(c.logger, infra.KindBadResponse, "failed to decode response data", env.Message, err)
	}
	return nil
}
