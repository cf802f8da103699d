package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/morlend/ghrelay/internal/relay"
)

func invalidAction(format string, args ...any) *relay.Error {
	return &relay.Error{Kind: relay.KindInvalidAction, Message: fmt.Sprintf(format, args...)}
}

func writeSuccess(w http.ResponseWriter, reqID, status, message string, fields map[string]any) {
	payload := map[string]any{
		"status":    status,
		"message":   message,
		"requestId": reqID,
	}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}

func writeRelayError(w http.ResponseWriter, reqID string, devMode bool, err error) {
	relErr := asRelayError(err)
	code := httpStatusFor(relErr.Kind)

	errObj := map[string]any{
		"type":    string(relErr.Kind),
		"message": relErr.Message,
	}
	if relErr.UpstreamStatus != 0 {
		errObj["upstreamStatus"] = relErr.UpstreamStatus
	}

	payload := map[string]any{
		"error":     errObj,
		"requestId": reqID,
	}
	if relErr.Kind == relay.KindInvalidAction {
		payload["availableActions"] = relay.Actions()
	}
	if devMode && code >= 500 {
		if cause := relErr.Unwrap(); cause != nil {
			payload["detail"] = cause.Error()
		} else {
			payload["detail"] = relErr.Error()
		}
	}

	writeJSON(w, code, payload)
}

// asRelayError coerces any handler failure into the closed error shape.
// Anything unrecognized is treated as an upstream failure so the caller
// still receives a well-formed envelope.
func asRelayError(err error) *relay.Error {
	var relErr *relay.Error
	if errors.As(err, &relErr) {
		return relErr
	}
	return &relay.Error{Kind: relay.KindUpstream, Message: err.Error()}
}

func httpStatusFor(kind relay.Kind) int {
	switch kind {
	case relay.KindMissingParameter, relay.KindInvalidAction:
		return http.StatusBadRequest
	case relay.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case relay.KindConfiguration, relay.KindUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
