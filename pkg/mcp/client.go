package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client communicates with a remote MCP server over HTTP using JSON-RPC
// 2.0 messages. Only tool discovery and invocation are implemented.
type Client struct {
	*client.Client
	id          atomic.Int64
	mu          sync.Mutex
	initialized bool
	sessionId   string
	clientInfo  ClientInfo
	tools       map[string]*Tool // cached tools by name
}

// response wraps a JSON-RPC response and captures the Mcp-Session-Id header
type response struct {
	Response
	sessionId *string
}

var _ client.Unmarshaler = (*response)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the MCP server at the given URL
func New(url string, info ClientInfo, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	c.clientInfo = info

	// Set endpoint and user agent from client info
	defaults := []client.ClientOpt{
		client.OptEndpoint(url),
		client.OptUserAgent(info.Name + "/" + info.Version),
	}
	httpClient, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	c.Client = httpClient
	return c, nil
}

// Close terminates the session on the server. It is a no-op if the client
// has not been initialized.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}
	if c.sessionId != "" {
		req, err := client.NewJSONRequestEx(http.MethodDelete, struct{}{}, client.ContentTypeAny)
		if err != nil {
			return err
		}
		if err := c.DoWithContext(
			context.Background(),
			req,
			nil,
			client.OptReqHeader("Mcp-Session-Id", c.sessionId),
		); err != nil {
			return err
		}
	}

	// Reset state
	c.initialized = false
	c.sessionId = ""
	c.tools = nil
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the tools available on the server, following cursor
// pagination until exhausted
func (c *Client) ListTools(ctx context.Context) ([]*Tool, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}

	var result []*Tool
	var cursor string
	for {
		var params any
		if cursor != "" {
			params = RequestList{Cursor: cursor}
		}
		resp, err := c.doRPC(ctx, Request{
			Version: RPCVersion,
			Method:  MessageTypeListTools,
			ID:      c.nextId(),
			Payload: params,
		})
		if err != nil {
			return nil, err
		}

		var listResp ResponseListTools
		if err := json.Unmarshal(resp.Result, &listResp); err != nil {
			return nil, err
		}
		result = append(result, listResp.Tools...)
		if listResp.NextCursor == "" {
			break
		}
		cursor = listResp.NextCursor
	}

	// Cache tools by name for validation in CallTool
	c.mu.Lock()
	c.tools = make(map[string]*Tool, len(result))
	for _, t := range result {
		c.tools[t.Name] = t
	}
	c.mu.Unlock()

	return result, nil
}

// CallTool executes a tool on the server. The tool name and arguments are
// validated against the server-reported schema before the request is sent.
func (c *Client) CallTool(ctx context.Context, name string, args json.RawMessage) (*ResponseToolCall, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}
	if err := c.validateToolCall(ctx, name, args); err != nil {
		return nil, err
	}

	resp, err := c.doRPC(ctx, Request{
		Version: RPCVersion,
		Method:  MessageTypeCallTool,
		ID:      c.nextId(),
		Payload: RequestToolCall{Name: name, Arguments: args},
	})
	if err != nil {
		return nil, err
	}

	var result ResponseToolCall
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// init performs the MCP initialize handshake if not already done
func (c *Client) init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	// Send initialize and capture the session ID from response headers
	payload, err := client.NewJSONRequest(Request{
		Version: RPCVersion,
		Method:  MessageTypeInitialize,
		ID:      c.nextId(),
		Payload: RequestInitialize{
			ProtocolVersion: ProtocolVersion,
			ClientInfo:      c.clientInfo,
		},
	})
	if err != nil {
		return err
	}
	var resp response
	resp.sessionId = &c.sessionId
	if err := c.DoWithContext(ctx, payload, &resp); err != nil {
		return satai.ErrUpstream.Withf("initialize failed: %v", err)
	}
	if resp.Err != nil {
		return resp.Err
	}

	// Send initialized notification (no ID = notification)
	notifPayload, err := client.NewJSONRequest(Request{
		Version: RPCVersion,
		Method:  NotificationTypeInitialize,
	})
	if err != nil {
		return err
	}
	var notifOpts []client.RequestOpt
	if c.sessionId != "" {
		notifOpts = append(notifOpts, client.OptReqHeader("Mcp-Session-Id", c.sessionId))
	}
	if err := c.DoWithContext(ctx, notifPayload, nil, notifOpts...); err != nil {
		return satai.ErrUpstream.Withf("initialize failed: %v", err)
	}

	c.initialized = true
	return nil
}

// nextId returns the next JSON-RPC request ID
func (c *Client) nextId() uint64 {
	return uint64(c.id.Add(1))
}

// doRPC sends a JSON-RPC request and returns the response
func (c *Client) doRPC(ctx context.Context, req Request) (*Response, error) {
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	var opts []client.RequestOpt
	c.mu.Lock()
	if c.sessionId != "" {
		opts = append(opts, client.OptReqHeader("Mcp-Session-Id", c.sessionId))
	}
	c.mu.Unlock()

	var resp response
	if err := c.DoWithContext(ctx, payload, &resp, opts...); err != nil {
		return nil, satai.ErrUpstream.Withf("rpc failed: %v", err)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &resp.Response, nil
}

// validateToolCall checks the tool exists and the arguments match its
// schema. The tool cache is populated on first use.
func (c *Client) validateToolCall(ctx context.Context, name string, args json.RawMessage) error {
	c.mu.Lock()
	cached := c.tools != nil
	c.mu.Unlock()
	if !cached {
		if _, err := c.ListTools(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	tool, exists := c.tools[name]
	c.mu.Unlock()
	if !exists {
		return &Error{Code: ErrorCodeMethodNotFound, Message: "tool not found: " + name}
	}
	if len(tool.InputSchema) == 0 {
		return nil
	}

	// Validate arguments against the server-reported schema
	var schema jsonschema.Schema
	if err := json.Unmarshal(tool.InputSchema, &schema); err != nil {
		return satai.ErrBadParameter.Withf("invalid input schema for tool %q: %v", name, err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return satai.ErrBadParameter.Withf("invalid input schema for tool %q: %v", name, err)
	}
	var argsValue any = map[string]any{}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &argsValue); err != nil {
			return &Error{Code: ErrorCodeInvalidParameters, Message: "invalid arguments JSON"}
		}
	}
	if err := resolved.Validate(argsValue); err != nil {
		return &Error{Code: ErrorCodeInvalidParameters, Message: "argument validation failed: " + err.Error()}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

func (r *response) Unmarshal(header http.Header, body io.Reader) error {
	// Capture session ID from response header
	if id := header.Get("Mcp-Session-Id"); id != "" && r.sessionId != nil {
		*r.sessionId = id
	}

	// Decode the JSON-RPC response. Notifications return no content.
	if err := json.NewDecoder(body).Decode(&r.Response); err != nil && err != io.EOF {
		return err
	}
	return nil
}
