package stacks_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	opts "github.com/mutablelogic/go-client"
	assert "github.com/stretchr/testify/assert"

	satai "github.com/satai-labs/go-satai"
	stacks "github.com/satai-labs/go-satai/pkg/stacks"
	tool "github.com/satai-labs/go-satai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// newIndexServer serves a balances index with two tokens. Metadata calls
// succeed for token-a (decimals 8, symbol TKA) and fail for token-b.
func newIndexServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/extended/v1/address/"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"fungible_tokens": {
					"ST1ABC.token-a::token-a": {"balance": "150000000"},
					"ST2DEF.token-b::token-b": {"balance": "42"}
				}
			}`))
		case strings.Contains(r.URL.Path, "/token-a/get-decimals"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay": true, "result": "0x070100000000000000000000000000000008"}`))
		case strings.Contains(r.URL.Path, "/token-a/get-symbol"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay": true, "result": "0x070d00000003544b41"}`))
		case strings.Contains(r.URL.Path, "/token-b/"):
			http.Error(w, "no such contract", http.StatusNotFound)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_balance_001(t *testing.T) {
	assert := assert.New(t)

	server := newIndexServer(t)
	defer server.Close()

	client, err := stacks.New("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}

	balances, err := client.Balances(t.Context(), "ST3WALLET")
	if !assert.NoError(err) {
		t.FailNow()
	}

	// One token's metadata failure does not shrink the batch
	if !assert.Len(balances, 2) {
		t.FailNow()
	}

	// token-a: metadata resolved, balance scaled to 8 decimals
	assert.Equal("TKA", balances[0].Token)
	assert.Equal("1.50000000", balances[0].Balance)
	assert.Equal("150000000", balances[0].RawBalance)
	assert.Equal("ST1ABC.token-a::token-a", balances[0].ContractId)

	// token-b: fallback keeps the raw identifier and the unscaled balance
	assert.Equal("ST2DEF.token-b::token-b", balances[1].Token)
	assert.Equal("42", balances[1].Balance)
	assert.Equal("42", balances[1].RawBalance)
	assert.Equal("ST2DEF.token-b::token-b", balances[1].ContractId)
}

func Test_balance_002(t *testing.T) {
	assert := assert.New(t)

	// Zero fungible tokens is the no-tokens sentinel, not an empty list
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fungible_tokens": {}}`))
	}))
	defer server.Close()

	client, err := stacks.New("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}

	_, err = client.Balances(t.Context(), "ST3WALLET")
	assert.Error(err)
	assert.True(errors.Is(err, stacks.ErrNoTokens))
}

func Test_balance_003(t *testing.T) {
	assert := assert.New(t)

	// A failing index surfaces as a single fetch error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := stacks.New("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}

	_, err = client.Balances(t.Context(), "ST3WALLET")
	assert.Error(err)
	assert.True(errors.Is(err, satai.ErrUpstream))
	assert.Contains(err.Error(), "failed to fetch token balances")
}

func Test_balance_004(t *testing.T) {
	assert := assert.New(t)

	// The API key is sent as a header when configured
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fungible_tokens": {}}`))
	}))
	defer server.Close()

	client, err := stacks.New("hiro-key", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}

	_, err = client.Balances(t.Context(), "ST3WALLET")
	assert.True(errors.Is(err, stacks.ErrNoTokens))
	assert.Equal("hiro-key", gotKey)
}

func Test_balance_005(t *testing.T) {
	assert := assert.New(t)

	// A contract reporting an absurd decimals value (here 2^63) takes the
	// metadata fallback path instead of formatting with it
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/extended/v1/address/"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"fungible_tokens": {"ST1ABC.token-big::token-big": {"balance": "42"}}}`))
		case strings.Contains(r.URL.Path, "/get-decimals"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay": true, "result": "0x070100000000000000008000000000000000"}`))
		case strings.Contains(r.URL.Path, "/get-symbol"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay": true, "result": "0x070d00000003424947"}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := stacks.New("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}

	balances, err := client.Balances(t.Context(), "ST3WALLET")
	if !assert.NoError(err) {
		t.FailNow()
	}
	if !assert.Len(balances, 1) {
		t.FailNow()
	}
	assert.Equal("ST1ABC.token-big::token-big", balances[0].Token)
	assert.Equal("42", balances[0].Balance)
	assert.Equal("42", balances[0].RawBalance)
}

func Test_balance_006(t *testing.T) {
	assert := assert.New(t)

	// A token with zero decimals keeps the raw integer balance
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/extended/v1/address/"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"fungible_tokens": {"ST1ABC.token-zero::token-zero": {"balance": "1234"}}}`))
		case strings.Contains(r.URL.Path, "/get-decimals"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay": true, "result": "0x070100000000000000000000000000000000"}`))
		case strings.Contains(r.URL.Path, "/get-symbol"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay": true, "result": "0x070d000000035a524f"}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := stacks.New("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}

	balances, err := client.Balances(t.Context(), "ST3WALLET")
	if !assert.NoError(err) {
		t.FailNow()
	}
	if !assert.Len(balances, 1) {
		t.FailNow()
	}
	assert.Equal("ZRO", balances[0].Token)
	assert.Equal("1234", balances[0].Balance)
	assert.Equal("1234", balances[0].RawBalance)
}

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	server := newIndexServer(t)
	defer server.Close()

	tools, err := stacks.NewTools("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}
	if !assert.Len(tools, 1) {
		t.FailNow()
	}
	assert.Equal("getSbtcbalance", tools[0].Name())

	toolkit, err := tool.NewToolkit(tools...)
	if !assert.NoError(err) {
		t.FailNow()
	}
	result, err := toolkit.Run(t.Context(), "getSbtcbalance", map[string]any{"address": "ST3WALLET"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	balances, ok := result.([]stacks.TokenBalance)
	if assert.True(ok) {
		assert.Len(balances, 2)
	}
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	// The no-tokens sentinel becomes a human-readable message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fungible_tokens": {}}`))
	}))
	defer server.Close()

	tools, err := stacks.NewTools("", opts.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}
	toolkit, err := tool.NewToolkit(tools...)
	if !assert.NoError(err) {
		t.FailNow()
	}

	result, err := toolkit.Run(t.Context(), "getSbtcbalance", map[string]any{"address": "ST3WALLET"})
	if assert.NoError(err) {
		assert.Equal("No fungible tokens found for this address.", result)
	}
}
