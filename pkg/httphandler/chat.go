package httphandler

import (
	"context"
	"net/http"
	"strings"
	"time"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"

	agent "github.com/satai-labs/go-satai/pkg/agent"
	opt "github.com/satai-labs/go-satai/pkg/opt"
	schema "github.com/satai-labs/go-satai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// defaultTurnBudget bounds the wall-clock time of one conversational turn,
// including any tool calls it makes. Cancellation propagates into in-flight
// tool executions.
const defaultTurnBudget = 30 * time.Second

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /chat
func ChatHandler(manager *agent.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/chat", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ChatRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}

				// Apply the turn budget
				ctx, cancel := context.WithTimeout(r.Context(), defaultTurnBudget)
				defer cancel()

				// Check Accept header for streaming vs JSON
				switch acceptType(r) {
				case acceptStream:
					chatStream(ctx, w, r, manager, req)
				case acceptJSON:
					chatJSON(ctx, w, r, manager, req)
				default:
					_ = httpresponse.Error(w, httpresponse.Err(http.StatusNotAcceptable))
				}
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Process one conversational turn, executing any tool calls",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// chatJSON sends the completed turn as a single JSON object
func chatJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, manager *agent.Manager, req schema.ChatRequest) {
	resp, err := manager.Chat(ctx, req)
	if err != nil {
		_ = httpresponse.Error(w, httpErr(err))
		return
	}
	_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
}

// chatStream sends the turn as a text/event-stream: assistant text deltas,
// tool invocation lifecycle updates, and a final response event.
func chatStream(ctx context.Context, w http.ResponseWriter, r *http.Request, manager *agent.Manager, req schema.ChatRequest) {
	stream := httpresponse.NewTextStream(w)
	if stream == nil {
		_ = httpresponse.Error(w, httpresponse.ErrInternalError)
		return
	}
	defer stream.Close()

	// Stream assistant text as it is produced
	fn := opt.StreamFn(func(role, text string) {
		stream.Write(schema.EventAssistant, schema.StreamDelta{Role: role, Text: text})
	})

	// Stream each invocation state change: once pending, once terminal
	invocationFn := agent.InvocationFn(func(invocation schema.Invocation) {
		stream.Write(schema.EventTool, schema.StreamInvocation{Invocation: invocation})
	})

	resp, err := manager.Chat(ctx, req, opt.WithStream(fn), agent.WithInvocationFn(invocationFn))
	if err != nil {
		stream.Write(schema.EventError, schema.StreamError{Error: err.Error()})
		return
	}

	// Send the final complete response
	stream.Write(schema.EventResult, resp)
}

// acceptKind classifies the negotiated response format
type acceptKind int

const (
	acceptJSON        acceptKind = iota // application/json (or no Accept header)
	acceptStream                        // text/event-stream
	acceptUnsupported                   // unsupported media type
)

// acceptType inspects the Accept header and returns the negotiated format.
// When no Accept header is present, defaults to JSON.
func acceptType(r *http.Request) acceptKind {
	header := r.Header.Get("Accept")
	if header == "" {
		return acceptJSON
	}
	for _, part := range strings.Split(header, ",") {
		mt := strings.TrimSpace(part)
		// Strip quality parameters (e.g. ";q=0.9")
		if idx := strings.IndexByte(mt, ';'); idx >= 0 {
			mt = strings.TrimSpace(mt[:idx])
		}
		switch mt {
		case "text/event-stream":
			return acceptStream
		case "application/json", "*/*":
			return acceptJSON
		}
	}
	return acceptUnsupported
}
