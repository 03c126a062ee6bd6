package render_test

import (
	"encoding/json"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	render "github.com/satai-labs/go-satai/pkg/render"
	schema "github.com/satai-labs/go-satai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_render_001(t *testing.T) {
	assert := assert.New(t)

	// A pending balance invocation renders its loading label
	view := render.Render(schema.Invocation{
		ID:    "1",
		Name:  "getSbtcbalance",
		State: schema.StatePending,
	})
	if assert.NotNil(view) {
		assert.Equal(render.ViewLoading, view.Kind)
		assert.Equal("Fetching balance", view.Label)
	}

	// An unknown pending tool falls back to the generic label
	view = render.Render(schema.Invocation{
		ID:    "2",
		Name:  "unknownTool",
		State: schema.StatePending,
	})
	if assert.NotNil(view) {
		assert.Equal(render.ViewLoading, view.Kind)
		assert.Equal("Processing", view.Label)
	}
}

func Test_render_002(t *testing.T) {
	assert := assert.New(t)

	// A result is routed to the view for its tool, with the payload bound
	payload := json.RawMessage(`{"symbol": "BTC", "price": 65000}`)
	view := render.Render(schema.Invocation{
		ID:     "1",
		Name:   "cryptoToolPrice",
		State:  schema.StateResult,
		Result: payload,
	})
	if assert.NotNil(view) {
		assert.Equal(render.ViewPrice, view.Kind)
		assert.JSONEq(string(payload), string(view.Data))
	}

	// A result for a tool without a view renders nothing
	view = render.Render(schema.Invocation{
		ID:     "2",
		Name:   "unknownTool",
		State:  schema.StateResult,
		Result: json.RawMessage(`{}`),
	})
	assert.Nil(view)
}

func Test_render_003(t *testing.T) {
	assert := assert.New(t)

	// A failed invocation renders an error view with the message
	view := render.Render(schema.Invocation{
		ID:    "1",
		Name:  "cryptoToolPrice",
		State: schema.StateFailed,
		Error: "upstream error: no quote available",
	})
	if assert.NotNil(view) {
		assert.Equal(render.ViewError, view.Kind)
		assert.Equal("upstream error: no quote available", view.Label)
	}
}

func Test_render_004(t *testing.T) {
	assert := assert.New(t)

	// Order is preserved, viewless results are dropped
	views := render.RenderAll([]schema.Invocation{
		{ID: "1", Name: "getSbtcbalance", State: schema.StateResult, Result: json.RawMessage(`[]`)},
		{ID: "2", Name: "unknownTool", State: schema.StateResult, Result: json.RawMessage(`{}`)},
		{ID: "3", Name: "cryptoHistoricalPrice", State: schema.StatePending},
	})
	if assert.Len(views, 2) {
		assert.Equal(render.ViewBalance, views[0].Kind)
		assert.Equal(render.ViewHistory, views[1].Kind)
		assert.Equal("Fetching price history", views[1].Label)
	}
}
