package coinmarketcap

import (
	"context"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Quote struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Change24h   float64 `json:"percent_change_24h,omitempty"`
	MarketCap   float64 `json:"market_cap,omitempty"`
	LastUpdated string  `json:"last_updated,omitempty"`
}

type respStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type respQuote struct {
	Status respStatus `json:"status"`
	Data   map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Quote  map[string]struct {
			Price       float64   `json:"price"`
			Change24h   float64   `json:"percent_change_24h"`
			MarketCap   float64   `json:"market_cap"`
			LastUpdated time.Time `json:"last_updated"`
		} `json:"quote"`
	} `json:"data"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Returns the latest quote for a cryptocurrency symbol, converted to USD
func (c *Client) LatestQuote(ctx context.Context, req *QuoteRequest) (Quote, error) {
	var response respQuote

	// Check parameters
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return Quote{}, satai.ErrBadParameter.With("missing symbol")
	}
	req.Symbol = symbol

	// Request -> Response
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("cryptocurrency", "quotes", "latest"), client.OptQuery(req.Values()), client.OptReqHeader("X-CMC_PRO_API_KEY", c.key)); err != nil {
		return Quote{}, satai.ErrUpstream.Withf("quote request failed: %v", err)
	} else if response.Status.ErrorCode != 0 {
		return Quote{}, satai.ErrUpstream.Withf("quote request failed: %s", response.Status.ErrorMessage)
	}

	// Lookup the symbol in the response
	data, exists := response.Data[symbol]
	if !exists {
		return Quote{}, satai.ErrUpstream.Withf("no quote available for %q", symbol)
	}
	quote, exists := data.Quote[convertCurrency]
	if !exists {
		return Quote{}, satai.ErrUpstream.Withf("no %s quote available for %q", convertCurrency, symbol)
	}

	// Return success
	return Quote{
		Name:        data.Name,
		Symbol:      data.Symbol,
		Price:       quote.Price,
		Currency:    convertCurrency,
		Change24h:   quote.Change24h,
		MarketCap:   quote.MarketCap,
		LastUpdated: quote.LastUpdated.Format(time.RFC3339),
	}, nil
}
