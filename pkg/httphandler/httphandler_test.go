package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"

	agent "github.com/satai-labs/go-satai/pkg/agent"
	httphandler "github.com/satai-labs/go-satai/pkg/httphandler"
	opt "github.com/satai-labs/go-satai/pkg/opt"
	schema "github.com/satai-labs/go-satai/pkg/schema"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK GENERATOR

// mockGenerator answers with a fixed tool call on the first turn when it
// has a tool call scripted, then echoes the last user message.
type mockGenerator struct {
	toolCall *schema.ToolCall
	calls    int
}

var _ agent.Generator = (*mockGenerator)(nil)

func (g *mockGenerator) Generate(_ context.Context, messages []schema.Message, _ ...opt.Opt) (*schema.Message, error) {
	g.calls++
	if g.toolCall != nil && g.calls == 1 {
		return &schema.Message{
			Role:    schema.RoleAssistant,
			Content: []schema.ContentBlock{{ToolCall: g.toolCall}},
			Result:  schema.ResultToolCall,
		}, nil
	}
	message := schema.NewMessage(schema.RoleAssistant, "echo: "+messages[0].Text())
	message.Result = schema.ResultStop
	return &message, nil
}

///////////////////////////////////////////////////////////////////////////////
// MOCK TOOL

type mockInput struct {
	Symbol string `json:"symbol,omitempty" jsonschema:"The symbol"`
}

type mockTool struct {
	name string
}

func (t *mockTool) Name() string        { return t.name }
func (t *mockTool) Description() string { return "A mock tool" }
func (t *mockTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[mockInput](nil)
}
func (t *mockTool) Run(_ context.Context, _ json.RawMessage) (any, error) {
	return map[string]any{"ok": true}, nil
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func newTestManager(t *testing.T, generator agent.Generator, tools ...tool.Tool) *agent.Manager {
	t.Helper()
	var opts []agent.Opt
	if len(tools) > 0 {
		tk, err := tool.NewToolkit(tools...)
		if err != nil {
			t.Fatal(err)
		}
		opts = append(opts, agent.WithToolkit(tk))
	}
	m, err := agent.NewManager(generator, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func serveMux(manager *agent.Manager) *http.ServeMux {
	mux := http.NewServeMux()
	path, handler, _ := httphandler.ChatHandler(manager)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.ToolListHandler(manager)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.ToolGetHandler(manager)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.VersionHandler()
	mux.HandleFunc(path, handler)
	return mux
}
