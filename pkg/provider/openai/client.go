/*
openai implements a client for an OpenAI-compatible chat completion API
https://platform.openai.com/docs/api-reference/chat
*/
package openai

import (
	// Packages
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	model string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint     = "https://api.openai.com/v1"
	defaultModel = "gpt-4o-mini"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. Any OpenAI-compatible endpoint can be used through
// the client.OptEndpoint option.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	// Check for missing API key
	if apiKey == "" {
		return nil, satai.ErrMissingCredential.With("model API key is not configured")
	}

	// Create client
	defaults := []client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptReqToken(client.Token{
			Scheme: client.Bearer,
			Value:  apiKey,
		}),
	}
	httpClient, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: httpClient,
		model:  defaultModel,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model returns the model used for completions
func (c *Client) Model() string {
	return c.model
}

// SetModel sets the model used for completions
func (c *Client) SetModel(model string) {
	if model != "" {
		c.model = model
	}
}
