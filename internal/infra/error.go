package infra

import (
	"errors"
	"log/slog"

	"slot-hold-gateway/internal/pkg/errs"
)

type UpstreamErrorKind string

// UpstreamError carries the failure category of a booking-backend call plus
// the server-provided message, which is authoritative over any local guess.
type UpstreamError struct {
	Kind      UpstreamErrorKind
	serverMsg string
	msg       string
	err       error // wrapped low-level error
}

func (e UpstreamError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e UpstreamError) Unwrap() error {
	return e.err
}

func WrapUpstreamErr(slogger *slog.Logger, kind UpstreamErrorKind, msg, serverMsg string, err error) error {
	slogger.Error("Upstream error: "+msg,
		slog.String("kind", string(kind)),
		slog.String("server_message", serverMsg),
	)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return UpstreamError{Kind: kind, serverMsg: serverMsg, msg: msg, err: err}
}

func IsKind(err error, kind UpstreamErrorKind) bool {
	var e UpstreamError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ServerMessage extracts the booking backend's own message text, empty when
// the failure never reached the backend or it sent none.
func ServerMessage(err error) string {
	var e UpstreamError
	if errors.As(err, &e) {
		return e.serverMsg
	}
	return ""
}

// Upstream-specific error kinds
const (
	KindConflict    UpstreamErrorKind = "CONFLICT"
	KindUnavailable UpstreamErrorKind = "UNAVAILABLE"
	KindNetwork     UpstreamErrorKind = "NETWORK"
	KindBadResponse UpstreamErrorKind = "BAD_RESPONSE"
)
