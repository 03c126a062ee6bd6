package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	assert "github.com/stretchr/testify/assert"

	satai "github.com/satai-labs/go-satai"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type echoInput struct {
	Message string `json:"message" jsonschema:"The message to echo back"`
}

type echo struct {
	name   string
	called bool
}

var _ tool.Tool = (*echo)(nil)

func (e *echo) Name() string {
	return e.name
}

func (e *echo) Description() string {
	return "Echo a message back to the caller"
}

func (e *echo) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[echoInput](nil)
}

func (e *echo) Run(ctx context.Context, input json.RawMessage) (any, error) {
	e.called = true
	var req echoInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, err
		}
	}
	return req.Message, nil
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_toolkit_001(t *testing.T) {
	assert := assert.New(t)

	toolkit, err := tool.NewToolkit(&echo{name: "echo"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Len(toolkit.Tools(), 1)
	assert.NotNil(toolkit.Lookup("echo"))
	assert.Nil(toolkit.Lookup("other"))
	t.Log(toolkit)
}

func Test_toolkit_002(t *testing.T) {
	assert := assert.New(t)

	// Tool names which are not identifiers are rejected
	_, err := tool.NewToolkit(&echo{name: "not a name"})
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrBadParameter))

	// Duplicate names are rejected
	_, err = tool.NewToolkit(&echo{name: "echo"}, &echo{name: "echo"})
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrConflict))
}

func Test_toolkit_003(t *testing.T) {
	assert := assert.New(t)

	// Tools are sorted by name
	toolkit, err := tool.NewToolkit(&echo{name: "zebra"}, &echo{name: "aardvark"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	tools := toolkit.Tools()
	if assert.Len(tools, 2) {
		assert.Equal("aardvark", tools[0].Name())
		assert.Equal("zebra", tools[1].Name())
	}

	defs := toolkit.Definitions()
	if assert.Len(defs, 2) {
		assert.Equal("aardvark", defs[0].Name)
		assert.NotNil(defs[0].InputSchema)
	}
}

func Test_toolkit_004(t *testing.T) {
	assert := assert.New(t)

	toolkit, err := tool.NewToolkit(&echo{name: "echo"})
	if !assert.NoError(err) {
		t.FailNow()
	}

	// Run with valid input
	result, err := toolkit.Run(t.Context(), "echo", map[string]any{"message": "hello"})
	if assert.NoError(err) {
		assert.Equal("hello", result)
	}

	// Run an unknown tool
	_, err = toolkit.Run(t.Context(), "missing", nil)
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrNotFound))
}

func Test_toolkit_005(t *testing.T) {
	assert := assert.New(t)

	// Input which fails schema validation never reaches the tool
	tool_ := &echo{name: "echo"}
	toolkit, err := tool.NewToolkit(tool_)
	if !assert.NoError(err) {
		t.FailNow()
	}

	_, err = toolkit.Run(t.Context(), "echo", map[string]any{"message": 42})
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrBadParameter))
	assert.False(tool_.called)
}
