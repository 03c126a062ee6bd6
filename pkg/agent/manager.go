/*
agent orchestrates one conversational turn: it sends the conversation to
the model, executes any tool calls the model makes, and feeds the results
back until the model produces a final answer or the iteration limit is
reached.
*/
package agent

import (
	"context"

	// Packages
	trace "go.opentelemetry.io/otel/trace"

	satai "github.com/satai-labs/go-satai"
	opt "github.com/satai-labs/go-satai/pkg/opt"
	schema "github.com/satai-labs/go-satai/pkg/schema"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Generator produces one assistant message from a conversation. The
// returned message may contain tool call blocks.
type Generator interface {
	Generate(ctx context.Context, messages []schema.Message, opts ...opt.Opt) (*schema.Message, error)
}

// InvocationFn is called with each tool invocation lifecycle change:
// once when pending, once when terminal
type InvocationFn func(schema.Invocation)

// Manager wires a generator to a toolkit
type Manager struct {
	generator    Generator
	toolkit      *tool.Toolkit
	tracer       trace.Tracer
	systemPrompt string
}

// Opt is a manager construction option
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewManager creates a manager for a generator
func NewManager(generator Generator, opts ...Opt) (*Manager, error) {
	if generator == nil {
		return nil, satai.ErrBadParameter.With("missing generator")
	}
	m := &Manager{
		generator: generator,
	}
	for _, o := range opts {
		if err := o(m); err != nil {
			return nil, err
		}
	}
	if m.toolkit == nil {
		toolkit, err := tool.NewToolkit()
		if err != nil {
			return nil, err
		}
		m.toolkit = toolkit
	}
	return m, nil
}

// WithToolkit sets the toolkit offered to the model
func WithToolkit(toolkit *tool.Toolkit) Opt {
	return func(m *Manager) error {
		if toolkit == nil {
			return satai.ErrBadParameter.With("missing toolkit")
		}
		m.toolkit = toolkit
		return nil
	}
}

// WithTracer sets the tracer for turn spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		m.tracer = tracer
		return nil
	}
}

// WithSystemPrompt sets the system prompt sent with every turn
func WithSystemPrompt(prompt string) Opt {
	return func(m *Manager) error {
		m.systemPrompt = prompt
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns the manager's toolkit
func (m *Manager) Toolkit() *tool.Toolkit {
	return m.toolkit
}

// WithInvocationFn returns an option carrying an invocation lifecycle
// callback for one turn
func WithInvocationFn(fn InvocationFn) opt.Opt {
	return opt.SetAny(opt.InvocationKey, fn)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// definitions resolves the tool definitions for a turn. An empty filter
// offers every registered tool; an unknown name in the filter is an error.
func (m *Manager) definitions(filter []string) ([]schema.ToolDefinition, error) {
	if len(filter) == 0 {
		return m.toolkit.Definitions(), nil
	}
	filtered := make([]tool.Tool, 0, len(filter))
	for _, name := range filter {
		t := m.toolkit.Lookup(name)
		if t == nil {
			return nil, satai.ErrNotFound.Withf("tool %q", name)
		}
		filtered = append(filtered, t)
	}
	toolkit, err := tool.NewToolkit(filtered...)
	if err != nil {
		return nil, err
	}
	return toolkit.Definitions(), nil
}
