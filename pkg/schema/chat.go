package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatRequest is one conversational turn: the ordered list of prior messages
// plus an optional filter restricting which registered tools are offered to
// the model.
type ChatRequest struct {
	Messages      []Message `json:"messages"`
	Tools         []string  `json:"tools,omitempty"`
	MaxIterations uint      `json:"max_iterations,omitempty"`
}

// ChatResponse is the completed turn: the assistant's final message and the
// tool invocations that were executed along the way, in execution order.
type ChatResponse struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	Result      ResultType   `json:"result"`
	Invocations []Invocation `json:"invocations,omitempty"`
}

// StreamDelta is one streamed chunk of assistant or tool output
type StreamDelta struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// StreamInvocation is a streamed tool invocation lifecycle update
type StreamInvocation struct {
	Invocation Invocation `json:"invocation"`
}

// StreamError is a streamed error event
type StreamError struct {
	Error string `json:"error"`
}

///////////////////////////////////////////////////////////////////////////////
// SSE EVENT NAMES

const (
	EventAssistant = "assistant" // Streamed text chunk from the assistant
	EventTool      = "tool"      // Tool invocation lifecycle update
	EventError     = "error"     // Error during processing
	EventResult    = "result"    // Final complete response
)

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// DefaultMaxIterations bounds the tool-calling loop within one turn
const DefaultMaxIterations uint = 10

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ChatRequest) String() string {
	return types.Stringify(r)
}

func (r ChatResponse) String() string {
	return types.Stringify(r)
}
