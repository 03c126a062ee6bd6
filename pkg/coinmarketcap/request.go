package coinmarketcap

import (
	"fmt"
	"net/url"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type QuoteRequest struct {
	Symbol string `json:"symbol" jsonschema:"The ticker symbol of the cryptocurrency, e.g. BTC, ETH, USDT"`
}

type HistoricalRequest struct {
	Symbol string `json:"symbol" jsonschema:"The ticker symbol of the cryptocurrency. Possible options: BTC, ETH, USDT"`
	Days   int    `json:"days" jsonschema:"The number of days of daily price history to fetch, ending today"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Symbols for which historical data can be requested
var historicalSymbols = []string{"BTC", "ETH", "USDT"}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (r *QuoteRequest) Values() url.Values {
	result := url.Values{}
	if r.Symbol != "" {
		result.Set("symbol", r.Symbol)
	}
	result.Set("convert", convertCurrency)
	return result
}

func (r *HistoricalRequest) Values() url.Values {
	result := url.Values{}
	if r.Symbol != "" {
		result.Set("symbol", r.Symbol)
	}
	if r.Days > 0 {
		end := time.Now().UTC().Truncate(24 * time.Hour)
		start := end.AddDate(0, 0, -r.Days)
		result.Set("time_start", start.Format(time.DateOnly))
		result.Set("time_end", end.Format(time.DateOnly))
		result.Set("count", fmt.Sprint(r.Days))
	}
	result.Set("interval", "daily")
	result.Set("convert", convertCurrency)
	return result
}
