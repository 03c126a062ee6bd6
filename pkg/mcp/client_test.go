package mcp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	mcp "github.com/satai-labs/go-satai/pkg/mcp"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// newServer simulates an MCP server with one paginated tool listing and a
// coin price tool
func newServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}

		var req mcp.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch req.Method {
		case mcp.MessageTypeInitialize:
			w.Header().Set("Mcp-Session-Id", "session-1")
			json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": req.ID,
				"result": map[string]any{
					"protocolVersion": mcp.ProtocolVersion,
					"serverInfo":      map[string]any{"name": "coingecko", "version": "1.0"},
				},
			})
		case mcp.NotificationTypeInitialize:
			w.WriteHeader(http.StatusAccepted)
		case mcp.MessageTypeListTools:
			assert.Equal(t, "session-1", r.Header.Get("Mcp-Session-Id"))
			params, _ := json.Marshal(req.Payload)
			if string(params) == "null" || !json.Valid(params) || string(params) == "{}" {
				// First page
				json.NewEncoder(w).Encode(map[string]any{
					"jsonrpc": "2.0", "id": req.ID,
					"result": map[string]any{
						"tools": []map[string]any{{
							"name":        "get_coin_price",
							"description": "Get the price of a coin",
							"inputSchema": map[string]any{
								"type":       "object",
								"properties": map[string]any{"coin": map[string]any{"type": "string"}},
								"required":   []string{"coin"},
							},
						}},
						"nextCursor": "page-2",
					},
				})
			} else {
				// Second page
				json.NewEncoder(w).Encode(map[string]any{
					"jsonrpc": "2.0", "id": req.ID,
					"result": map[string]any{
						"tools": []map[string]any{{
							"name":        "get_market_chart",
							"description": "Get a market chart",
						}},
					},
				})
			}
		case mcp.MessageTypeCallTool:
			json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": req.ID,
				"result": map[string]any{
					"content": []map[string]any{{"type": "text", "text": "bitcoin: $65000"}},
				},
			})
		default:
			t.Errorf("unexpected method: %s", req.Method)
		}
	}))
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_mcp_001(t *testing.T) {
	assert := assert.New(t)

	server := newServer(t)
	defer server.Close()

	client, err := mcp.New(server.URL, mcp.ClientInfo{Name: "satai", Version: "1.0"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	defer client.Close()

	// Pagination is followed to the end
	tools, err := client.ListTools(t.Context())
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(tools, 2) {
		assert.Equal("get_coin_price", tools[0].Name)
		assert.Equal("get_market_chart", tools[1].Name)
	}
}

func Test_mcp_002(t *testing.T) {
	assert := assert.New(t)

	server := newServer(t)
	defer server.Close()

	client, err := mcp.New(server.URL, mcp.ClientInfo{Name: "satai", Version: "1.0"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	defer client.Close()

	result, err := client.CallTool(t.Context(), "get_coin_price", json.RawMessage(`{"coin": "bitcoin"}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.False(result.IsError)
	if assert.Len(result.Content, 1) {
		assert.Equal("bitcoin: $65000", result.Content[0].Text)
	}
}

func Test_mcp_003(t *testing.T) {
	assert := assert.New(t)

	server := newServer(t)
	defer server.Close()

	client, err := mcp.New(server.URL, mcp.ClientInfo{Name: "satai", Version: "1.0"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	defer client.Close()

	// Unknown tool is rejected without a call
	_, err = client.CallTool(t.Context(), "missing_tool", nil)
	assert.Error(err)

	// Arguments which fail the server-reported schema are rejected
	_, err = client.CallTool(t.Context(), "get_coin_price", json.RawMessage(`{"coin": 42}`))
	assert.Error(err)
}

func Test_mcp_004(t *testing.T) {
	assert := assert.New(t)

	server := newServer(t)
	defer server.Close()

	// Remote tools can be registered alongside local tools
	tools, err := mcp.NewTools(t.Context(), server.URL, mcp.ClientInfo{Name: "satai", Version: "1.0"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	toolkit, err := tool.NewToolkit(tools...)
	if !assert.NoError(err) {
		t.FailNow()
	}

	result, err := toolkit.Run(t.Context(), "get_coin_price", map[string]any{"coin": "bitcoin"})
	if assert.NoError(err) {
		assert.Equal("bitcoin: $65000", result)
	}
}
