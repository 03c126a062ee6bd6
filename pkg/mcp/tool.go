package mcp

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// remote adapts a server-reported tool to the local tool interface, so
// remote tools and local tools can share one registry
type remote struct {
	client *Client
	def    *Tool
}

var _ tool.Tool = (*remote)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools discovers the tools on a remote MCP server and wraps them so
// they can be registered alongside local tools
func NewTools(ctx context.Context, url string, info ClientInfo, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	mcpClient, err := New(url, info, opts...)
	if err != nil {
		return nil, err
	}

	// Discover the remote tools
	defs, err := mcpClient.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	tools := make([]tool.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, &remote{client: mcpClient, def: def})
	}
	return tools, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *remote) Name() string {
	return r.def.Name
}

func (r *remote) Description() string {
	return r.def.Description
}

// Return the JSON schema for the tool input
func (r *remote) Schema() (*jsonschema.Schema, error) {
	if len(r.def.InputSchema) == 0 {
		return nil, nil
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(r.def.InputSchema, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Run the tool on the remote server with the given input
func (r *remote) Run(ctx context.Context, input json.RawMessage) (any, error) {
	result, err := r.client.CallTool(ctx, r.def.Name, input)
	if err != nil {
		return nil, err
	}

	// A tool-level error is surfaced as a failure of this invocation
	text := contentText(result.Content)
	if result.IsError {
		return nil, satai.ErrUpstream.Withf("remote tool failed: %s", text)
	}
	return text, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// contentText joins the text parts of a tool result
func contentText(content []ToolContent) string {
	parts := make([]string, 0, len(content))
	for _, c := range content {
		if c.Type == "text" && c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
