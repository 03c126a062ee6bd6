package stacks

import (
	"context"
	"encoding/json"
	"errors"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type BalanceRequest struct {
	Address string `json:"address" jsonschema:"The wallet address to fetch token balances for"`
}

type balance struct {
	client *Client
}

var _ tool.Tool = (*balance)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewTools(apikey string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(apikey, opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&balance{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// BALANCE

func (*balance) Name() string {
	return "getSbtcbalance"
}

func (*balance) Description() string {
	return "Get the fungible token balances for a wallet address on the Stacks network."
}

// Return the JSON schema for the tool input
func (*balance) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[BalanceRequest](nil)
}

// Run the tool with the given input
func (b *balance) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req BalanceRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, satai.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.Address == "" {
		return nil, satai.ErrBadParameter.With("missing address")
	}

	balances, err := b.client.Balances(ctx, req.Address)
	if errors.Is(err, ErrNoTokens) {
		// A human-readable message rather than an empty list, so the model
		// can relay it directly
		return "No fungible tokens found for this address.", nil
	} else if err != nil {
		return nil, err
	}
	return balances, nil
}
