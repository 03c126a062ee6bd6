package coinmarketcap

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type price struct {
	client *Client
}

type historical struct {
	client *Client
}

var _ tool.Tool = (*price)(nil)
var _ tool.Tool = (*historical)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewTools(apikey string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(apikey, opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&price{client: client},
		&historical{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRICE

func (*price) Name() string {
	return "cryptoToolPrice"
}

func (*price) Description() string {
	return "Get the current price of a cryptocurrency in USD, given its ticker symbol."
}

// Return the JSON schema for the tool input
func (*price) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[QuoteRequest](nil)
}

// Run the tool with the given input
func (p *price) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req QuoteRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, satai.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	return p.client.LatestQuote(ctx, &req)
}

///////////////////////////////////////////////////////////////////////////////
// HISTORICAL

func (*historical) Name() string {
	return "cryptoHistoricalPrice"
}

func (*historical) Description() string {
	return "Get the daily price history of a cryptocurrency in USD over a number of days, ending today. Supported symbols: BTC, ETH, USDT."
}

// Return the JSON schema for the tool input
func (*historical) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[HistoricalRequest](nil)
	if err != nil {
		return nil, err
	}

	// Add enum constraints for symbol
	if symbol, ok := schema.Properties["symbol"]; ok && symbol != nil {
		symbol.Enum = []any{"BTC", "ETH", "USDT"}
	}

	return schema, nil
}

// Run the tool with the given input
func (h *historical) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req HistoricalRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, satai.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	points, err := h.client.HistoricalQuotes(ctx, &req)
	if err != nil {
		return nil, err
	}

	// The request symbol has been normalized by the fetch
	return HistoricalResult{
		Symbol: req.Symbol,
		Prices: points,
	}, nil
}
