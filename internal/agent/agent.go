// Package agent answers holiday questions with a chat model that calls the
// holiday tools.
package agent

import (
	"context"
	"errors"
)

// ErrNoModel is returned when no chat model is configured
var ErrNoModel = errors.New("agent: no language model configured (set OPENAI_API_KEY)")

const (
	RoleUser      = "user"
	RoleAgent     = "agent"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a conversation, flattened to text
type Message struct {
	Role    string
	Content string
}

// ToolResult records a tool call the agent made while answering
type ToolResult struct {
	ToolName string `json:"toolName"`
	Result   any    `json:"result"`
}

type Response struct {
	Text        string
	ToolResults []ToolResult
}

// Agent generates a reply to a conversation
type Agent interface {
	Generate(ctx context.Context, msgs []Message) (*Response, error)
}

// Unavailable stands in for the agent when no model is configured
type Unavailable struct{}

func (Unavailable) Generate(context.Context, []Message) (*Response, error) {
	return nil, ErrNoModel
}

// Ask sends a single user prompt
func Ask(ctx context.Context, a Agent, prompt string) (*Response, error) {
	return a.Generate(ctx, []Message{{Role: RoleUser, Content: prompt}})
}
