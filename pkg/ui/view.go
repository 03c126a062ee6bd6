/*
ui renders tool invocation views for the terminal. Each view kind maps
to a table or a one-line status; unknown payloads degrade to their JSON
representation rather than failing the turn.
*/
package ui

import (
	"encoding/json"
	"fmt"
	"strconv"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"

	coinmarketcap "github.com/satai-labs/go-satai/pkg/coinmarketcap"
	render "github.com/satai-labs/go-satai/pkg/render"
	stacks "github.com/satai-labs/go-satai/pkg/stacks"
	table "github.com/satai-labs/go-satai/pkg/ui/table"
	wallet "github.com/satai-labs/go-satai/pkg/wallet"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// rows is a TableData over a fixed header and cell matrix
type rows struct {
	header []string
	cells  [][]any
}

var _ table.TableData = (*rows)(nil)

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	loadingStyle = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// View renders one view descriptor as a terminal string
func View(v render.View) string {
	switch v.Kind {
	case render.ViewLoading:
		return loadingStyle.Render(v.Label + "…")
	case render.ViewError:
		return errorStyle.Render(v.Tool + ": " + v.Label)
	case render.ViewPrice:
		return priceTable(v.Data)
	case render.ViewHistory:
		return historyTable(v.Data)
	case render.ViewBalance:
		return balanceTable(v.Data)
	case render.ViewTransfer:
		return transferTable(v.Data)
	case render.ViewDeposit:
		return depositTable(v.Data)
	}
	return raw(v.Data)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *rows) Header() []string { return r.header }
func (r *rows) Len() int         { return len(r.cells) }
func (r *rows) Row(i int) []any  { return r.cells[i] }

func priceTable(data json.RawMessage) string {
	var quote coinmarketcap.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return raw(data)
	}
	return table.Render(&rows{
		header: []string{"Name", "Symbol", "Price", "24h", "Market Cap"},
		cells: [][]any{{
			quote.Name,
			table.Bold{Value: quote.Symbol},
			money(quote.Price, quote.Currency),
			percent(quote.Change24h),
			money(quote.MarketCap, quote.Currency),
		}},
	})
}

func historyTable(data json.RawMessage) string {
	var result coinmarketcap.HistoricalResult
	if err := json.Unmarshal(data, &result); err != nil {
		return raw(data)
	}
	price := "Price"
	if result.Symbol != "" {
		price = result.Symbol + " Price"
	}
	cells := make([][]any, len(result.Prices))
	for i, p := range result.Prices {
		cells[i] = []any{p.Date, money(p.Price, "USD")}
	}
	return table.Render(&rows{
		header: []string{"Date", price},
		cells:  cells,
	})
}

func balanceTable(data json.RawMessage) string {
	// A balance result is either a list of tokens or a plain message
	var message string
	if err := json.Unmarshal(data, &message); err == nil {
		return message
	}
	var balances []stacks.TokenBalance
	if err := json.Unmarshal(data, &balances); err != nil {
		return raw(data)
	}
	cells := make([][]any, len(balances))
	for i, b := range balances {
		cells[i] = []any{table.Bold{Value: b.Token}, b.Balance, table.Truncate(b.ContractId, 40)}
	}
	return table.Render(&rows{
		header: []string{"Token", "Balance", "Contract"},
		cells:  cells,
	})
}

func transferTable(data json.RawMessage) string {
	var req wallet.SendRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return raw(data)
	}
	return table.Render(&rows{
		header: []string{"To", "Amount"},
		cells:  [][]any{{table.Truncate(req.Address, 40), table.Bold{Value: req.Amount}}},
	})
}

func depositTable(data json.RawMessage) string {
	var req wallet.ConvertRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return raw(data)
	}
	return table.Render(&rows{
		header: []string{"Deposit", "Receive"},
		cells:  [][]any{{req.Amount + " BTC", table.Bold{Value: req.Amount + " sBTC"}}},
	})
}

// raw falls back to the JSON payload as-is
func raw(data json.RawMessage) string {
	return string(data)
}

// money formats an amount with its currency code
func money(v float64, currency string) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + currency
}

// percent formats a signed percentage change
func percent(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%+.2f%%", v)
}
