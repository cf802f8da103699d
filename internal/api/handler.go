// Package api exposes the relay over HTTP: one mutating endpoint with
// an action discriminator in the JSON body, and a uniform response
// envelope for success and failure alike.
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/morlend/ghrelay/internal/config"
	"github.com/morlend/ghrelay/internal/relay"
)

const maxRequestBodySize = 10 << 20 // 10MB

type Deps struct {
	Store  relay.Store
	GitHub config.GitHubConfig
	// DevMode includes raw error detail in 5xx envelopes.
	DevMode bool
}

// NewHandler builds the router. The relay endpoint answers on both
// /api/relay and /, the path the legacy front-end posts to.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         86400,
	}))

	r.Get("/health", handleHealth)

	relayHandler := handleRelay(deps)
	r.Post("/", relayHandler)
	r.Post("/api/relay", relayHandler)

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeRelayError(w, uuid.NewString(), deps.DevMode, &relay.Error{
			Kind:    relay.KindMethodNotAllowed,
			Message: "method " + req.Method + " is not allowed; use POST",
		})
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{
				"type":    "not_found",
				"message": "route not found",
			},
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleRelay(deps Deps) http.HandlerFunc {
	registrar := relay.NewRegistrar(deps.Store)
	appender := relay.NewAppender(deps.Store)
	upserter := relay.NewUpserter(deps.Store)

	return func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		start := time.Now()

		// Configuration is checked before the body is touched: an
		// unconfigured deployment must never reach GitHub.
		if err := deps.GitHub.Validate(); err != nil {
			writeRelayError(w, reqID, deps.DevMode, &relay.Error{
				Kind:    relay.KindConfiguration,
				Message: err.Error(),
			})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeRelayError(w, reqID, deps.DevMode, invalidAction("reading request body: %v", err))
			return
		}

		var probe struct {
			Action string `json:"action"`
		}
		if err := json.Unmarshal(body, &probe); err != nil {
			writeRelayError(w, reqID, deps.DevMode, invalidAction("request body is not valid JSON"))
			return
		}
		action, ok := relay.ParseAction(probe.Action)
		if !ok {
			if probe.Action == "" {
				writeRelayError(w, reqID, deps.DevMode, invalidAction("action is required"))
			} else {
				writeRelayError(w, reqID, deps.DevMode, invalidAction("unsupported action %q", probe.Action))
			}
			return
		}

		logger := slog.With("requestId", reqID, "action", string(action))

		var (
			status  string
			message string
			fields  map[string]any
			relErr  error
		)
		switch action {
		case relay.ActionEnsureRecord:
			var req relay.EnsureRecordRequest
			if err := json.Unmarshal(body, &req); err != nil {
				relErr = &relay.Error{Kind: relay.KindMissingParameter, Message: "invalid request body: " + err.Error()}
				break
			}
			res, err := registrar.Ensure(r.Context(), req)
			if err != nil {
				relErr = err
				break
			}
			status = "created"
			message = "subject record created"
			if res.Existed {
				status = "already_exists"
				message = "subject record already exists"
			}
			fields = map[string]any{
				"number":    res.Number,
				"title":     res.Title,
				"url":       res.URL,
				"htmlUrl":   res.HTMLURL,
				"createdAt": res.CreatedAt,
			}

		case relay.ActionAppendComment:
			var req relay.AppendCommentRequest
			if err := json.Unmarshal(body, &req); err != nil {
				relErr = &relay.Error{Kind: relay.KindMissingParameter, Message: "invalid request body: " + err.Error()}
				break
			}
			res, err := appender.Append(r.Context(), req)
			if err != nil {
				relErr = err
				break
			}
			status = "created"
			message = "comment appended"
			fields = map[string]any{
				"id":        res.ID,
				"url":       res.URL,
				"htmlUrl":   res.HTMLURL,
				"createdAt": res.CreatedAt,
			}

		case relay.ActionUpsertFile:
			var req relay.UpsertFileRequest
			if err := json.Unmarshal(body, &req); err != nil {
				relErr = &relay.Error{Kind: relay.KindMissingParameter, Message: "invalid request body: " + err.Error()}
				break
			}
			res, err := upserter.Upsert(r.Context(), req)
			if err != nil {
				relErr = err
				break
			}
			status = "created"
			message = "file created"
			if res.Updated {
				status = "updated"
				message = "file updated"
			}
			fields = map[string]any{
				"path":    res.Path,
				"sha":     res.SHA,
				"url":     res.URL,
				"htmlUrl": res.HTMLURL,
			}
		}

		if relErr != nil {
			logger.Error("relay request failed",
				"error", relErr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			writeRelayError(w, reqID, deps.DevMode, relErr)
			return
		}

		logger.Info("relay request handled",
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		writeSuccess(w, reqID, status, message, fields)
	}
}
