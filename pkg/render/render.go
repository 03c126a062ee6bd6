/*
render routes a tool invocation to a view descriptor. The mapping from
tool name to view is static: a tool registered without a corresponding
view renders nothing, so new tools never crash a client that does not
know them yet.
*/
package render

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"

	schema "github.com/satai-labs/go-satai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ViewKind identifies the view a client should use for an invocation
type ViewKind string

// View is a descriptor for rendering one tool invocation. For loading and
// error views, Label carries the text; for result views, Data carries the
// invocation's result payload.
type View struct {
	Kind  ViewKind        `json:"kind"`
	Tool  string          `json:"tool"`
	Label string          `json:"label,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ViewLoading  ViewKind = "loading"
	ViewError    ViewKind = "error"
	ViewPrice    ViewKind = "price"
	ViewTransfer ViewKind = "transfer"
	ViewDeposit  ViewKind = "deposit"
	ViewBalance  ViewKind = "balance"
	ViewHistory  ViewKind = "history"
)

// Label shown while a tool invocation is pending
var loadingLabels = map[string]string{
	"cryptoToolPrice":       "Loading coin price",
	"Sendcrypto":            "Processing transaction",
	"Convertbtc":            "Processing conversion",
	"Sendstx":               "Processing STX transaction",
	"getSbtcbalance":        "Fetching balance",
	"cryptoHistoricalPrice": "Fetching price history",
}

// Fallback label for tools without a loading entry
const defaultLoadingLabel = "Processing"

// View used for a tool's result payload
var resultViews = map[string]ViewKind{
	"cryptoToolPrice":       ViewPrice,
	"Sendcrypto":            ViewTransfer,
	"Sendstx":               ViewTransfer,
	"Convertbtc":            ViewDeposit,
	"getSbtcbalance":        ViewBalance,
	"cryptoHistoricalPrice": ViewHistory,
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render returns the view descriptor for an invocation, or nil when the
// invocation has a result but no view is bound to its tool name.
func Render(invocation schema.Invocation) *View {
	switch invocation.State {
	case schema.StateFailed:
		return &View{
			Kind:  ViewError,
			Tool:  invocation.Name,
			Label: invocation.Error,
		}
	case schema.StateResult:
		kind, exists := resultViews[invocation.Name]
		if !exists {
			// Intentionally dropped: no view bound to this tool
			return nil
		}
		return &View{
			Kind: kind,
			Tool: invocation.Name,
			Data: invocation.Result,
		}
	default:
		label, exists := loadingLabels[invocation.Name]
		if !exists {
			label = defaultLoadingLabel
		}
		return &View{
			Kind:  ViewLoading,
			Tool:  invocation.Name,
			Label: label,
		}
	}
}

// RenderAll returns view descriptors for a list of invocations, in the
// order they appear, omitting invocations which render nothing
func RenderAll(invocations []schema.Invocation) []View {
	result := make([]View, 0, len(invocations))
	for _, invocation := range invocations {
		if view := Render(invocation); view != nil {
			result = append(result, *view)
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (v View) String() string {
	return types.Stringify(v)
}
