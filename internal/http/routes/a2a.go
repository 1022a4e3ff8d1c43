package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/holidayagent/internal/agent"
)

// JSON-RPC 2.0 error codes
const (
	codeInvalidRequest = -32600
	codeInvalidParams  = -32602
	codeInternal       = -32603
)

const (
	greetingArtifact    = "HolidayGreeting"
	toolResultsArtifact = "ToolResults"
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method,omitempty"`
	Params  rpcParams       `json:"params"`
}

type rpcParams struct {
	Message   *inMessage     `json:"message,omitempty"`
	Messages  []inMessage    `json:"messages,omitempty"`
	ContextID string         `json:"contextId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// inMessage is the loose message shape clients send; roles beyond the a2a
// user/agent pair are accepted.
type inMessage struct {
	Kind      string   `json:"kind,omitempty"`
	Role      string   `json:"role"`
	Parts     []inPart `json:"parts"`
	MessageID string   `json:"messageId,omitempty"`
	TaskID    string   `json:"taskId,omitempty"`
}

type inPart struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Data any    `json:"data,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) handleA2A(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.internalError(w, r, fmt.Errorf("read body: %w", err))
		return
	}
	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.internalError(w, r, err)
		return
	}

	if req.JSONRPC != "2.0" || missingID(req.ID) {
		id := req.ID
		if missingID(id) {
			id = nil
		}
		writeJSON(w, r, http.StatusBadRequest, rpcResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &rpcError{
				Code:    codeInvalidRequest,
				Message: `Invalid Request: jsonrpc must be "2.0" and id is required`,
			},
		})
		return
	}

	agentID := chi.URLParam(r, "agentID")
	ag, ok := s.Agents[agentID]
	if !ok {
		writeJSON(w, r, http.StatusNotFound, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidParams, Message: fmt.Sprintf("Agent '%s' not found", agentID)},
		})
		return
	}

	p := req.Params
	taskID := a2a.TaskID(orNew(p.TaskID))
	contextID := orNew(p.ContextID)

	if isNewConversation(p) {
		log.Info().Str("agent", agentID).Msg("new conversation, sending greeting")
		text := s.Greeter.Greet(r.Context())
		reply := s.agentMessage(text, taskID)
		task := s.completedTask(taskID, contextID, text, []*a2a.Artifact{textArtifact(greetingArtifact, text)}, []*a2a.Message{reply})
		writeJSON(w, r, http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: task})
		return
	}

	msgs := p.Messages
	if p.Message != nil {
		msgs = []inMessage{*p.Message}
	}

	resp, err := ag.Generate(r.Context(), flatten(msgs))
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	artifacts := []*a2a.Artifact{textArtifact(agentID+"Response", resp.Text)}
	if len(resp.ToolResults) > 0 {
		parts := make(a2a.ContentParts, 0, len(resp.ToolResults))
		for _, tr := range resp.ToolResults {
			parts = append(parts, a2a.DataPart{Data: map[string]any{"toolName": tr.ToolName, "result": tr.Result}})
		}
		artifacts = append(artifacts, &a2a.Artifact{ID: a2a.ArtifactID(uuid.NewString()), Name: toolResultsArtifact, Parts: parts})
	}

	history := make([]*a2a.Message, 0, len(msgs)+1)
	for _, m := range msgs {
		history = append(history, &a2a.Message{
			ID:     orNew(m.MessageID),
			Role:   a2a.MessageRole(m.Role),
			Parts:  toParts(m.Parts),
			TaskID: a2a.TaskID(orDefault(m.TaskID, string(taskID))),
		})
	}
	history = append(history, s.agentMessage(resp.Text, taskID))

	writeJSON(w, r, http.StatusOK, rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  s.completedTask(taskID, contextID, resp.Text, artifacts, history),
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg("a2a request failed")
	writeJSON(w, r, http.StatusInternalServerError, rpcResponse{
		JSONRPC: "2.0",
		Error: &rpcError{
			Code:    codeInternal,
			Message: "Internal error",
			Data:    map[string]string{"details": err.Error()},
		},
	})
}

func (s *Server) completedTask(taskID a2a.TaskID, contextID, text string, artifacts []*a2a.Artifact, history []*a2a.Message) *a2a.Task {
	ts := s.now().UTC()
	return &a2a.Task{
		ID:        taskID,
		ContextID: contextID,
		Status: a2a.TaskStatus{
			State:     a2a.TaskStateCompleted,
			Timestamp: &ts,
			Message: &a2a.Message{
				ID:    uuid.NewString(),
				Role:  a2a.MessageRoleAgent,
				Parts: a2a.ContentParts{a2a.TextPart{Text: text}},
			},
		},
		Artifacts: artifacts,
		History:   history,
	}
}

func (s *Server) agentMessage(text string, taskID a2a.TaskID) *a2a.Message {
	return &a2a.Message{
		ID:     uuid.NewString(),
		Role:   a2a.MessageRoleAgent,
		Parts:  a2a.ContentParts{a2a.TextPart{Text: text}},
		TaskID: taskID,
	}
}

func textArtifact(name, text string) *a2a.Artifact {
	return &a2a.Artifact{
		ID:    a2a.ArtifactID(uuid.NewString()),
		Name:  name,
		Parts: a2a.ContentParts{a2a.TextPart{Text: text}},
	}
}

// isNewConversation reports whether the request opens a chat: nothing sent,
// a single user message, or a message with no text.
func isNewConversation(p rpcParams) bool {
	if p.Messages == nil && p.Message == nil {
		return true
	}
	if len(p.Messages) == 1 && p.Messages[0].Role == agent.RoleUser {
		return true
	}
	if p.Message != nil && p.Messages == nil && p.Message.Role == agent.RoleUser {
		return true
	}
	if p.Message != nil {
		var sb strings.Builder
		for _, part := range p.Message.Parts {
			sb.WriteString(part.Text)
		}
		if strings.TrimSpace(sb.String()) == "" {
			return true
		}
	}
	return false
}

// flatten turns each message into one text turn: text parts verbatim and
// data parts as JSON, joined by newlines.
func flatten(msgs []inMessage) []agent.Message {
	out := make([]agent.Message, 0, len(msgs))
	for _, m := range msgs {
		lines := make([]string, 0, len(m.Parts))
		for _, part := range m.Parts {
			switch {
			case part.Kind == "text" && part.Text != "":
				lines = append(lines, part.Text)
			case part.Kind == "data" && part.Data != nil:
				b, err := json.Marshal(part.Data)
				if err != nil {
					lines = append(lines, "")
					continue
				}
				lines = append(lines, string(b))
			default:
				lines = append(lines, "")
			}
		}
		out = append(out, agent.Message{Role: m.Role, Content: strings.Join(lines, "\n")})
	}
	return out
}

func toParts(in []inPart) a2a.ContentParts {
	parts := make(a2a.ContentParts, 0, len(in))
	for _, p := range in {
		switch p.Kind {
		case "data":
			data, ok := p.Data.(map[string]any)
			if !ok {
				data = map[string]any{"value": p.Data}
			}
			parts = append(parts, a2a.DataPart{Data: data})
		default:
			parts = append(parts, a2a.TextPart{Text: p.Text})
		}
	}
	return parts
}

// missingID treats an absent, null, empty string or zero id as missing.
func missingID(id json.RawMessage) bool {
	v := bytes.TrimSpace(id)
	switch string(v) {
	case "", "null", `""`, "0":
		return true
	}
	return false
}

func orNew(s string) string {
	return orDefault(s, uuid.NewString())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
