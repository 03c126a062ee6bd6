package schema_test

import (
	"errors"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	satai "github.com/satai-labs/go-satai"
	schema "github.com/satai-labs/go-satai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_invocation_001(t *testing.T) {
	assert := assert.New(t)

	// A new invocation is pending, with the provider call ID preserved
	invocation := schema.NewInvocation(schema.ToolCall{ID: "call_1", Name: "cryptoToolPrice"})
	assert.Equal("call_1", invocation.ID)
	assert.Equal(schema.StatePending, invocation.State)
	assert.False(invocation.Terminal())

	// A missing call ID is generated
	invocation = schema.NewInvocation(schema.ToolCall{Name: "cryptoToolPrice"})
	assert.NotEmpty(invocation.ID)
}

func Test_invocation_002(t *testing.T) {
	assert := assert.New(t)

	// Complete is terminal; a second Complete or a Fail is a conflict
	invocation := schema.NewInvocation(schema.ToolCall{ID: "call_1", Name: "cryptoToolPrice"})
	if !assert.NoError(invocation.Complete(map[string]any{"price": 65000})) {
		t.FailNow()
	}
	assert.Equal(schema.StateResult, invocation.State)
	assert.True(invocation.Terminal())

	err := invocation.Complete("again")
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrConflict))

	err = invocation.Fail(errors.New("too late"))
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrConflict))

	// The recorded result is untouched by the rejected transitions
	assert.Equal(schema.StateResult, invocation.State)
	assert.Empty(invocation.Error)
}

func Test_invocation_003(t *testing.T) {
	assert := assert.New(t)

	// Fail is terminal; a later Complete or Fail is a conflict
	invocation := schema.NewInvocation(schema.ToolCall{ID: "call_2", Name: "getSbtcbalance"})
	if !assert.NoError(invocation.Fail(errors.New("upstream broken"))) {
		t.FailNow()
	}
	assert.Equal(schema.StateFailed, invocation.State)
	assert.Equal("upstream broken", invocation.Error)
	assert.True(invocation.Terminal())

	err := invocation.Complete("too late")
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrConflict))

	err = invocation.Fail(errors.New("again"))
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrConflict))

	assert.Equal(schema.StateFailed, invocation.State)
	assert.Equal("upstream broken", invocation.Error)
}
