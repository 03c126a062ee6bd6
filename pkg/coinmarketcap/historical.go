package coinmarketcap

import (
	"context"
	"slices"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// PricePoint is one daily closing price, with the date reduced to
// a calendar day in UTC
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// HistoricalResult is the price history payload delivered to the caller,
// carrying the normalized symbol alongside the points
type HistoricalResult struct {
	Symbol string       `json:"symbol"`
	Prices []PricePoint `json:"prices"`
}

type respHistorical struct {
	Status respStatus `json:"status"`
	Data   struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Quotes []struct {
			Timestamp time.Time `json:"timestamp"`
			Quote     map[string]struct {
				Price     float64   `json:"price"`
				Close     float64   `json:"close"`
				Timestamp time.Time `json:"timestamp"`
			} `json:"quote"`
		} `json:"quotes"`
	} `json:"data"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultHistoricalDays = 30
	maxHistoricalDays     = 365
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Returns the daily price history for a cryptocurrency symbol over the last
// requested number of days, ending today, oldest point first. Only symbols
// in the allow-list can be requested.
func (c *Client) HistoricalQuotes(ctx context.Context, req *HistoricalRequest) ([]PricePoint, error) {
	var response respHistorical

	// Check parameters before any network traffic
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if !slices.Contains(historicalSymbols, symbol) {
		return nil, satai.ErrBadParameter.Withf("historical data is not available for %q (supported: %s)", req.Symbol, strings.Join(historicalSymbols, ", "))
	}
	req.Symbol = symbol
	if req.Days <= 0 {
		req.Days = defaultHistoricalDays
	} else if req.Days > maxHistoricalDays {
		req.Days = maxHistoricalDays
	}

	// Request -> Response
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("cryptocurrency", "ohlcv", "historical"), client.OptQuery(req.Values()), client.OptReqHeader("X-CMC_PRO_API_KEY", c.key)); err != nil {
		return nil, satai.ErrUpstream.Withf("historical request failed: %v", err)
	} else if response.Status.ErrorCode != 0 {
		return nil, satai.ErrUpstream.Withf("historical request failed: %s", response.Status.ErrorMessage)
	}

	// Reshape into price points, oldest first. The close price is preferred
	// over the interval price when both are present.
	points := make([]PricePoint, 0, len(response.Data.Quotes))
	for _, q := range response.Data.Quotes {
		quote, exists := q.Quote[convertCurrency]
		if !exists {
			continue
		}
		price := quote.Close
		if price == 0 {
			price = quote.Price
		}
		points = append(points, PricePoint{
			Date:  q.Timestamp.UTC().Format(time.DateOnly),
			Price: price,
		})
	}
	if len(points) == 0 {
		return nil, satai.ErrUpstream.Withf("no price history available for %q", symbol)
	}
	slices.SortFunc(points, func(a, b PricePoint) int {
		return strings.Compare(a.Date, b.Date)
	})

	// Return success
	return points, nil
}
