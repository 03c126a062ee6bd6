/*
stacks implements an API client for the Hiro Stacks blockchain API
https://docs.hiro.so/api
*/
package stacks

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	key string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.testnet.hiro.so"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. The API key is optional; when set it is passed in
// the X-API-Key header for a higher rate limit.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	// Create client
	defaults := []client.ClientOpt{
		client.OptEndpoint(endPoint),
	}
	httpClient, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: httpClient,
		key:    apiKey,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Request options common to all calls
func (c *Client) reqopts(opts ...client.RequestOpt) []client.RequestOpt {
	if c.key != "" {
		opts = append(opts, client.OptReqHeader("X-API-Key", c.key))
	}
	return opts
}

///////////////////////////////////////////////////////////////////////////////
// READ-ONLY CONTRACT CALLS

type reqCallReadOnly struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

type respCallReadOnly struct {
	Okay   bool   `json:"okay"`
	Result string `json:"result,omitempty"`
	Cause  string `json:"cause,omitempty"`
}

// CallReadOnly invokes a read-only function with no arguments on a contract,
// and returns the decoded Clarity value
func (c *Client) CallReadOnly(ctx context.Context, contractAddress, contractName, function, sender string) (any, error) {
	var response respCallReadOnly

	// Request -> Response
	payload, err := client.NewJSONRequest(reqCallReadOnly{Sender: sender, Arguments: []string{}})
	if err != nil {
		return nil, err
	}
	if err := c.DoWithContext(ctx, payload, &response, c.reqopts(client.OptPath("v2", "contracts", "call-read", contractAddress, contractName, function))...); err != nil {
		return nil, satai.ErrUpstream.Withf("read-only call failed: %v", err)
	} else if !response.Okay {
		return nil, satai.ErrUpstream.Withf("read-only call failed: %s", response.Cause)
	}

	// Decode the Clarity value. A response wrapper is unwrapped so the
	// caller sees the inner value.
	value, err := DecodeClarity(response.Result)
	if err != nil {
		return nil, err
	}
	return value, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r respCallReadOnly) String() string {
	data, _ := json.Marshal(r)
	return string(data)
}
