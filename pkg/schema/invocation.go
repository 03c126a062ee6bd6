package schema

import (
	"encoding/json"

	// Packages
	uuid "github.com/google/uuid"
	types "github.com/mutablelogic/go-server/pkg/types"

	satai "github.com/satai-labs/go-satai"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// InvocationState is the lifecycle state of a tool invocation
type InvocationState string

// Invocation is one concrete call of a tool within a conversation turn.
// It starts pending and transitions exactly once to result or failed;
// both are terminal.
type Invocation struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Input  json.RawMessage `json:"input,omitempty"`
	State  InvocationState `json:"state"`
	Result json.RawMessage `json:"result,omitempty"` // Set when State is result
	Error  string          `json:"error,omitempty"`  // Set when State is failed
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	StatePending InvocationState = "pending"
	StateResult  InvocationState = "result"
	StateFailed  InvocationState = "failed"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewInvocation creates a pending invocation from a tool call. When the
// provider did not assign a call ID, a new one is generated.
func NewInvocation(call ToolCall) *Invocation {
	id := call.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Invocation{
		ID:    id,
		Name:  call.Name,
		Input: call.Input,
		State: StatePending,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete transitions the invocation from pending to result with the given
// value. Returns an error if the invocation is no longer pending.
func (i *Invocation) Complete(value any) error {
	if i.State != StatePending {
		return satai.ErrConflict.Withf("invocation %q is already %s", i.ID, i.State)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return satai.ErrInternalServerError.Withf("failed to marshal result: %v", err)
	}
	i.State = StateResult
	i.Result = json.RawMessage(data)
	return nil
}

// Fail transitions the invocation from pending to failed with a displayable
// error message. Returns an error if the invocation is no longer pending.
func (i *Invocation) Fail(err error) error {
	if i.State != StatePending {
		return satai.ErrConflict.Withf("invocation %q is already %s", i.ID, i.State)
	}
	i.State = StateFailed
	i.Error = err.Error()
	return nil
}

// Terminal returns true once the invocation has reached result or failed
func (i *Invocation) Terminal() bool {
	return i.State == StateResult || i.State == StateFailed
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (i Invocation) String() string {
	return types.Stringify(i)
}
