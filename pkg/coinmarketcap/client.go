/*
coinmarketcap implements an API client for the CoinMarketCap
cryptocurrency quote API
https://coinmarketcap.com/api/documentation/v1/
*/
package coinmarketcap

import (
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
	endPoint = "https://pro-api.coinmarketcap.com/v1"

	// All quotes are requested in this currency
	convertCurrency = "USD"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. The API key is required; later options can override
// the endpoint (used by tests).
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	// Check for missing API key
	if apiKey == "" {
		return nil, satai.ErrMissingCredential.With("CoinMarketCap API key is not configured")
	}

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
