package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/holidayagent/internal/tools"
)

type toolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	all := s.Tools.All()
	out := make([]toolInfo, 0, len(all))
	for _, t := range all {
		out = append(out, toolInfo{Name: t.Name(), Description: t.Description(), Schema: t.Schema()})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "could not read body"})
		return
	}

	out, err := s.Tools.Call(r.Context(), name, json.RawMessage(body))
	if err != nil {
		status, outcome := toolStatus(err)
		s.Metrics.ToolCall(name, outcome)
		if status == http.StatusBadGateway {
			hlog.FromRequest(r).Warn().Err(err).Str("tool", name).Msg("tool call failed")
		}
		writeJSON(w, r, status, map[string]string{"error": err.Error()})
		return
	}
	s.Metrics.ToolCall(name, "ok")
	writeJSON(w, r, http.StatusOK, out)
}

func toolStatus(err error) (int, string) {
	var vErr *tools.ValidationError
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return http.StatusNotFound, "unknown"
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "invalid"
	default:
		return http.StatusBadGateway, "error"
	}
}
