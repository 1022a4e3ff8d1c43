package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/holidayagent/internal/tools"
)

const (
	DefaultModel         = "gpt-4o-mini"
	DefaultMaxToolRounds = 5
)

// NewClient builds an OpenAI-compatible client. An empty baseURL keeps the
// SDK default.
func NewClient(apiKey, baseURL string, httpClient *http.Client) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithMaxRetries(0),
	}
	if trimmed := strings.TrimRight(baseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed+"/"))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return openai.NewClient(opts...)
}

// OpenAI runs a chat completion loop, executing the tool calls the model
// asks for until it answers in text.
type OpenAI struct {
	client       openai.Client
	tools        *tools.Registry
	model        string
	instructions string
	maxRounds    int
	log          zerolog.Logger
}

type Option func(*OpenAI)

func WithModel(m string) Option {
	return func(a *OpenAI) {
		if m != "" {
			a.model = m
		}
	}
}

// WithMaxToolRounds bounds how many times tool results are fed back
func WithMaxToolRounds(n int) Option {
	return func(a *OpenAI) {
		if n > 0 {
			a.maxRounds = n
		}
	}
}

func WithInstructions(s string) Option {
	return func(a *OpenAI) { a.instructions = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *OpenAI) { a.log = l }
}

func NewOpenAI(client openai.Client, reg *tools.Registry, opts ...Option) *OpenAI {
	a := &OpenAI{
		client:       client,
		tools:        reg,
		model:        DefaultModel,
		instructions: Instructions(),
		maxRounds:    DefaultMaxToolRounds,
		log:          zerolog.Nop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *OpenAI) Generate(ctx context.Context, msgs []Message) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.model),
		Messages: a.messages(msgs),
		Tools:    a.toolParams(),
	}

	out := &Response{}
	for round := 0; ; round++ {
		if round == a.maxRounds {
			// last round: force a text answer
			params.Tools = nil
		}

		completion, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return nil, errors.New("chat completion: no choices returned")
		}
		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 || params.Tools == nil {
			out.Text = msg.Content
			return out, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			content := a.runTool(ctx, call.Function.Name, call.Function.Arguments, out)
			params.Messages = append(params.Messages, openai.ToolMessage(content, call.ID))
		}
	}
}

// runTool executes one call and returns the JSON fed back to the model.
// Tool failures go back to the model as {"error": ...} rather than
// failing the turn.
func (a *OpenAI) runTool(ctx context.Context, name, args string, out *Response) string {
	log := a.log.With().Str("tool", name).Logger()
	log.Info().Str("args", args).Msg("tool call")
	if a.tools == nil {
		return errorJSON(fmt.Errorf("%w: %s", tools.ErrUnknownTool, name))
	}

	result, err := a.tools.Call(ctx, name, json.RawMessage(args))
	if err != nil {
		log.Warn().Err(err).Msg("tool call failed")
		return errorJSON(err)
	}
	out.ToolResults = append(out.ToolResults, ToolResult{ToolName: name, Result: result})

	b, err := json.Marshal(result)
	if err != nil {
		return errorJSON(err)
	}
	return string(b)
}

func errorJSON(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}

func (a *OpenAI) messages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs)+1)
	if a.instructions != "" {
		out = append(out, openai.SystemMessage(a.instructions))
	}
	for _, m := range msgs {
		switch m.Role {
		case RoleAgent, RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func (a *OpenAI) toolParams() []openai.ChatCompletionToolParam {
	if a.tools == nil {
		return nil
	}
	all := a.tools.All()
	out := make([]openai.ChatCompletionToolParam, 0, len(all))
	for _, t := range all {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  openai.FunctionParameters(t.Schema()),
			},
		})
	}
	return out
}
