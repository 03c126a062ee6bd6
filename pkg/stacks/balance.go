package stacks

import (
	"context"
	"sort"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	errgroup "golang.org/x/sync/errgroup"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TokenBalance is one fungible token holding, enriched with on-chain
// metadata where available
type TokenBalance struct {
	Token      string `json:"token"`      // Symbol, or the raw identifier when metadata lookup failed
	Balance    string `json:"balance"`    // Decimal-formatted, or the raw balance when metadata lookup failed
	RawBalance string `json:"rawBalance"` // Unscaled integer balance as reported by the index
	ContractId string `json:"contractId"` // The compound token identifier
}

type respBalances struct {
	FungibleTokens map[string]struct {
		Balance string `json:"balance"`
	} `json:"fungible_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrNoTokens is returned when the address holds no fungible tokens. It is
// distinct from a fetch failure so the caller can render a human message.
var ErrNoTokens = satai.ErrNotFound.With("no fungible tokens found for this address")

const (
	// Assumed when a token contract does not report its decimals
	defaultDecimals = 6

	// A contract reporting more decimals than this is lying; treat it
	// as a metadata failure rather than format the balance with it
	maxTokenDecimals = 30

	// Bound on concurrent per-token metadata lookups
	maxMetadataLookups = 8
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Balances returns the normalized fungible token balances for an address,
// sorted by token identifier. Metadata lookups for independent tokens run
// concurrently; a token whose metadata lookup fails is still included,
// with the raw balance unscaled and the identifier in place of a symbol.
// Returns ErrNoTokens when the address holds no fungible tokens.
func (c *Client) Balances(ctx context.Context, address string) ([]TokenBalance, error) {
	var response respBalances

	// Fetch the full balance set for the address
	if err := c.DoWithContext(ctx, nil, &response, c.reqopts(client.OptPath("extended", "v1", "address", address, "balances"))...); err != nil {
		return nil, satai.ErrUpstream.Withf("failed to fetch token balances: %v", err)
	}
	if len(response.FungibleTokens) == 0 {
		return nil, ErrNoTokens
	}

	// Sort identifiers for a deterministic output order
	identifiers := make([]string, 0, len(response.FungibleTokens))
	for identifier := range response.FungibleTokens {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)

	// Enrich each token concurrently. Lookup failure is swallowed per
	// token, so the group only fails on context cancellation.
	result := make([]TokenBalance, len(identifiers))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxMetadataLookups)
	for i, identifier := range identifiers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result[i] = c.normalize(ctx, address, identifier, response.FungibleTokens[identifier].Balance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, satai.ErrUpstream.Withf("failed to fetch token balances: %v", err)
	}

	// Return success
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// normalize fetches decimals and symbol for one token and formats the
// balance. On lookup failure it falls back to the raw balance and records
// the reason on the current trace span.
func (c *Client) normalize(ctx context.Context, address, identifier, rawBalance string) TokenBalance {
	contractAddress, contractName, _ := parseTokenIdentifier(identifier)

	decimals := uint64(defaultDecimals)
	symbol := identifier

	decimalValue, err := c.CallReadOnly(ctx, contractAddress, contractName, "get-decimals", address)
	if err == nil {
		var symbolValue any
		symbolValue, err = c.CallReadOnly(ctx, contractAddress, contractName, "get-symbol", address)
		if err == nil {
			if v, ok := UIntValue(decimalValue); ok {
				decimals = v
			}
			if v, ok := StringValue(symbolValue); ok {
				symbol = v
			}
			if decimals <= maxTokenDecimals {
				return TokenBalance{
					Token:      symbol,
					Balance:    formatUnits(rawBalance, decimals),
					RawBalance: rawBalance,
					ContractId: identifier,
				}
			}
			err = satai.ErrUpstream.Withf("contract reports %d decimals", decimals)
		}
	}

	// Metadata lookup failed: include the token with the raw balance
	// unscaled, and keep the failure reason observable.
	trace.SpanFromContext(ctx).AddEvent("token metadata fallback", trace.WithAttributes(
		attribute.String("token", identifier),
		attribute.String("error", err.Error()),
	))
	return TokenBalance{
		Token:      identifier,
		Balance:    rawBalance,
		RawBalance: rawBalance,
		ContractId: identifier,
	}
}

// parseTokenIdentifier splits a compound token identifier of the form
// "{contractAddress}.{contractName}::{assetName}"
func parseTokenIdentifier(identifier string) (contractAddress, contractName, assetName string) {
	contract, assetName, _ := strings.Cut(identifier, "::")
	contractAddress, contractName, _ = strings.Cut(contract, ".")
	return
}

// formatUnits scales an unsigned integer string down by 10^decimals, with
// exactly decimals fractional digits. No floating point is involved.
func formatUnits(raw string, decimals uint64) string {
	if raw == "" {
		raw = "0"
	}
	if decimals == 0 {
		return raw
	}
	if uint64(len(raw)) <= decimals {
		raw = strings.Repeat("0", int(decimals)-len(raw)+1) + raw
	}
	split := len(raw) - int(decimals)
	return raw[:split] + "." + raw[split:]
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t TokenBalance) String() string {
	return types.Stringify(t)
}
