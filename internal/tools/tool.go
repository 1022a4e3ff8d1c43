// Package tools implements the holiday query operations offered to the
// agent, the CLI and the HTTP API.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

// Tool is a named operation with a JSON Schema for its input
type Tool interface {
	// Name returns the tool id (e.g., "get-holidays-by-country")
	Name() string

	Description() string

	// Schema returns the JSON Schema of the input object
	Schema() map[string]any

	// Call decodes args and runs the operation
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

type typedTool[In any, Out any] struct {
	name   string
	desc   string
	schema map[string]any
	fn     func(context.Context, In) (Out, error)
}

// newTool adapts a typed function into a Tool. The schema is reflected
// from In's json and jsonschema tags once, at construction.
func newTool[In any, Out any](name, desc string, fn func(context.Context, In) (Out, error)) Tool {
	return &typedTool[In, Out]{name: name, desc: desc, schema: schemaFor[In](), fn: fn}
}

func (t *typedTool[In, Out]) Name() string           { return t.name }
func (t *typedTool[In, Out]) Description() string    { return t.desc }
func (t *typedTool[In, Out]) Schema() map[string]any { return t.schema }

func (t *typedTool[In, Out]) Call(ctx context.Context, args json.RawMessage) (any, error) {
	var in In
	if trimmed := bytes.TrimSpace(args); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &in); err != nil {
			return nil, &ValidationError{Field: "arguments", Message: err.Error()}
		}
	}
	return t.fn(ctx, in)
}

func schemaFor[T any]() map[string]any {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	data, err := json.Marshal(r.Reflect(new(T)))
	if err != nil {
		panic(fmt.Sprintf("tools: reflect schema: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("tools: decode schema: %v", err))
	}
	delete(m, "$schema")
	delete(m, "$id")
	return m
}

// Registry manages the available tools
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry holding ts
func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

// Register adds a tool, replacing any tool with the same name
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tool names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the tools ordered by name
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, name := range r.List() {
		out = append(out, r.tools[name])
	}
	return out
}

// Call runs the named tool
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Call(ctx, args)
}
