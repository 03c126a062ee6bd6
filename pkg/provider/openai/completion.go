package openai

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
	opt "github.com/satai-labs/go-satai/pkg/opt"
	schema "github.com/satai-labs/go-satai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type reqCompletion struct {
	Model    string       `json:"model"`
	Messages []reqMessage `json:"messages"`
	Tools    []reqTool    `json:"tools,omitempty"`
}

type reqMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []respCall `json:"tool_calls,omitempty"`
	ToolCallId string     `json:"tool_call_id,omitempty"`
}

type reqTool struct {
	Type     string      `json:"type"`
	Function reqFunction `json:"function"`
}

type reqFunction struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// Completion Response
type Response struct {
	Id      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   uint64 `json:"index"`
		Message struct {
			Role      string     `json:"role"`
			Content   string     `json:"content,omitempty"`
			ToolCalls []respCall `json:"tool_calls,omitempty"`
		} `json:"message"`
		Reason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
}

type respCall struct {
	Id       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate runs one chat completion over the conversation and returns the
// assistant message, which may contain tool call blocks
func (c *Client) Generate(ctx context.Context, messages []schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Prepend the system prompt
	var payload []reqMessage
	if prompt := o.GetString(opt.SystemPromptKey); prompt != "" {
		payload = append(payload, reqMessage{Role: schema.RoleSystem, Content: prompt})
	}
	for _, message := range messages {
		encoded, err := encodeMessage(message)
		if err != nil {
			return nil, err
		}
		payload = append(payload, encoded...)
	}

	// Attach tool definitions
	var tools []reqTool
	if defs, ok := o.Get(opt.ToolkitKey).([]schema.ToolDefinition); ok {
		for _, def := range defs {
			tools = append(tools, reqTool{
				Type: "function",
				Function: reqFunction{
					Name:        def.Name,
					Description: def.Description,
					Parameters:  def.InputSchema,
				},
			})
		}
	}

	// Request -> Response
	req, err := client.NewJSONRequest(reqCompletion{
		Model:    c.model,
		Messages: payload,
		Tools:    tools,
	})
	if err != nil {
		return nil, err
	}
	var response Response
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, satai.ErrUpstream.Withf("completion failed: %v", err)
	}
	if len(response.Choices) == 0 {
		return nil, satai.ErrUpstream.With("completion returned no choices")
	}

	// Return the first choice as a message
	return decodeChoice(&response), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// encodeMessage reshapes one conversation message into wire messages. A
// message carrying tool results expands to one wire message per result.
func encodeMessage(message schema.Message) ([]reqMessage, error) {
	var calls []respCall
	var results []reqMessage
	text := ""
	for _, block := range message.Content {
		switch {
		case block.Text != nil:
			text += *block.Text
		case block.ToolCall != nil:
			call := respCall{Id: block.ToolCall.ID, Type: "function"}
			call.Function.Name = block.ToolCall.Name
			call.Function.Arguments = string(block.ToolCall.Input)
			calls = append(calls, call)
		case block.ToolResult != nil:
			results = append(results, reqMessage{
				Role:       schema.RoleTool,
				Content:    string(block.ToolResult.Content),
				ToolCallId: block.ToolResult.ID,
			})
		}
	}
	if len(results) > 0 {
		return results, nil
	}
	return []reqMessage{{
		Role:      message.Role,
		Content:   text,
		ToolCalls: calls,
	}}, nil
}

// decodeChoice converts the first completion choice into a message
func decodeChoice(response *Response) *schema.Message {
	choice := response.Choices[0]

	var content []schema.ContentBlock
	if choice.Message.Content != "" {
		text := choice.Message.Content
		content = append(content, schema.ContentBlock{Text: &text})
	}
	for _, call := range choice.Message.ToolCalls {
		content = append(content, schema.ContentBlock{
			ToolCall: &schema.ToolCall{
				ID:    call.Id,
				Name:  call.Function.Name,
				Input: json.RawMessage(call.Function.Arguments),
			},
		})
	}

	role := choice.Message.Role
	if role == "" {
		role = schema.RoleAssistant
	}
	return &schema.Message{
		Role:    role,
		Content: content,
		Result:  resultType(choice.Reason, len(choice.Message.ToolCalls) > 0),
	}
}

// resultType maps a finish reason to a result type
func resultType(reason string, hasCalls bool) schema.ResultType {
	switch reason {
	case "stop":
		if hasCalls {
			return schema.ResultToolCall
		}
		return schema.ResultStop
	case "length":
		return schema.ResultMaxTokens
	case "tool_calls", "function_call":
		return schema.ResultToolCall
	default:
		if hasCalls {
			return schema.ResultToolCall
		}
		return schema.ResultOther
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Response) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
