package agent

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"

	satai "github.com/satai-labs/go-satai"
	opt "github.com/satai-labs/go-satai/pkg/opt"
	schema "github.com/satai-labs/go-satai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat processes one conversational turn. Tool calls requested by the
// model are executed and their results fed back until the model produces
// a final answer or the iteration limit is reached. A failed tool call
// does not abort the turn: the invocation transitions to failed and the
// error is returned to the model as a tool result.
//
// Options may carry a stream callback (opt.WithStream) for assistant text
// and an invocation callback (WithInvocationFn) for lifecycle updates.
func (m *Manager) Chat(ctx context.Context, request schema.ChatRequest, opts ...opt.Opt) (response *schema.ChatResponse, err error) {
	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	fn := o.StreamFn()
	invocationFn, _ := o.Get(opt.InvocationKey).(InvocationFn)

	// Check the request
	if len(request.Messages) == 0 {
		return nil, satai.ErrBadParameter.With("missing messages")
	}
	maxIter := request.MaxIterations
	if maxIter == 0 {
		maxIter = schema.DefaultMaxIterations
	}

	// OTEL
	parent, endSpan := otel.StartSpan(m.tracer, ctx, "Chat",
		attribute.Int("messages", len(request.Messages)),
		attribute.StringSlice("tools", request.Tools),
	)
	defer func() { endSpan(err) }()

	// Resolve the tools offered to the model for this turn
	definitions, err := m.definitions(request.Tools)
	if err != nil {
		return nil, err
	}
	genOpts := []opt.Opt{}
	if m.systemPrompt != "" {
		genOpts = append(genOpts, opt.WithSystemPrompt(m.systemPrompt))
	}
	if len(definitions) > 0 {
		genOpts = append(genOpts, opt.SetAny(opt.ToolkitKey, definitions))
	}

	// Tool-calling loop
	messages := append([]schema.Message{}, request.Messages...)
	var invocations []schema.Invocation
	var result *schema.Message
	for i := uint(0); ; i++ {
		result, err = m.generator.Generate(parent, messages, genOpts...)
		if err != nil {
			return nil, err
		}
		if fn != nil && result.Text() != "" {
			fn(schema.RoleAssistant, result.Text())
		}
		if result.Result != schema.ResultToolCall {
			break
		}
		if i >= maxIter {
			result.Result = schema.ResultMaxIterations
			break
		}

		// Execute each tool call, collecting result blocks for the model
		var toolResults []schema.ContentBlock
		for _, call := range result.ToolCalls() {
			invocation := schema.NewInvocation(call)
			if invocationFn != nil {
				invocationFn(*invocation)
			}

			output, runErr := m.toolkit.Run(parent, call.Name, call.Input)
			if runErr != nil {
				// The turn survives a failed tool call
				if err := invocation.Fail(runErr); err != nil {
					return nil, err
				}
				toolResults = append(toolResults, schema.NewToolError(call.ID, call.Name, runErr))
			} else {
				if err := invocation.Complete(output); err != nil {
					return nil, err
				}
				toolResults = append(toolResults, schema.NewToolResult(call.ID, call.Name, output))
			}
			if invocationFn != nil {
				invocationFn(*invocation)
			}
			invocations = append(invocations, *invocation)
		}

		// Feed the assistant message and the tool results back
		messages = append(messages, *result, schema.Message{
			Role:    schema.RoleTool,
			Content: toolResults,
		})
	}

	// Return the response
	return &schema.ChatResponse{
		Role:        schema.RoleAssistant,
		Content:     result.Text(),
		Result:      result.Result,
		Invocations: invocations,
	}, nil
}
