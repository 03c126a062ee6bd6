/*
wallet implements the token transfer and deposit tools. Transfers are
simulated: the actual signing and broadcast happens in the wallet-connect
layer on the client side, so these tools acknowledge the request after a
fixed delay and echo the parameters back for the model to confirm.
*/
package wallet

import (
	"context"
	"encoding/json"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"

	satai "github.com/satai-labs/go-satai"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type SendRequest struct {
	Address string `json:"address" jsonschema:"The blockchain address to send tokens to"`
	Amount  string `json:"amount" jsonschema:"The amount of tokens to send"`
}

type ConvertRequest struct {
	Amount string `json:"amount" jsonschema:"The amount of BTC to deposit for conversion to sBTC"`
}

type send struct {
	name        string
	description string
	delay       time.Duration
}

type convert struct {
	delay time.Duration
}

// Opt adjusts the simulated settlement delays, used by tests
type Opt func(*opts)

type opts struct {
	sendDelay    time.Duration
	convertDelay time.Duration
}

var _ tool.Tool = (*send)(nil)
var _ tool.Tool = (*convert)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultSendDelay    = 2 * time.Second
	defaultConvertDelay = 5 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewTools(opt ...Opt) []tool.Tool {
	o := opts{
		sendDelay:    defaultSendDelay,
		convertDelay: defaultConvertDelay,
	}
	for _, fn := range opt {
		fn(&o)
	}

	return []tool.Tool{
		&send{
			name:        "Sendcrypto",
			description: "Send sBTC tokens to a blockchain address, given the address and an amount.",
			delay:       o.sendDelay,
		},
		&send{
			name:        "Sendstx",
			description: "Send STX tokens to a blockchain address, given the address and an amount.",
			delay:       o.sendDelay,
		},
		&convert{
			delay: o.convertDelay,
		},
	}
}

// OptDelay sets both simulated settlement delays
func OptDelay(d time.Duration) Opt {
	return func(o *opts) {
		o.sendDelay = d
		o.convertDelay = d
	}
}

///////////////////////////////////////////////////////////////////////////////
// SEND

func (s *send) Name() string {
	return s.name
}

func (s *send) Description() string {
	return s.description
}

// Return the JSON schema for the tool input
func (*send) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[SendRequest](nil)
}

// Run the tool with the given input
func (s *send) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req SendRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, satai.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.Address == "" {
		return nil, satai.ErrBadParameter.With("missing address")
	}
	if req.Amount == "" {
		return nil, satai.ErrBadParameter.With("missing amount")
	}

	// Simulated settlement, abandoned on cancellation
	if err := wait(ctx, s.delay); err != nil {
		return nil, err
	}
	return req, nil
}

///////////////////////////////////////////////////////////////////////////////
// CONVERT

func (*convert) Name() string {
	return "Convertbtc"
}

func (*convert) Description() string {
	return "Convert BTC to sBTC by generating a deposit, given the amount of BTC to deposit."
}

// Return the JSON schema for the tool input
func (*convert) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConvertRequest](nil)
}

// Run the tool with the given input
func (c *convert) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConvertRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, satai.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.Amount == "" {
		return nil, satai.ErrBadParameter.With("missing amount")
	}

	// Simulated settlement, abandoned on cancellation
	if err := wait(ctx, c.delay); err != nil {
		return nil, err
	}
	return req, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
