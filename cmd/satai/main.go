package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"

	agent "github.com/satai-labs/go-satai/pkg/agent"
	coinmarketcap "github.com/satai-labs/go-satai/pkg/coinmarketcap"
	mcp "github.com/satai-labs/go-satai/pkg/mcp"
	openai "github.com/satai-labs/go-satai/pkg/provider/openai"
	stacks "github.com/satai-labs/go-satai/pkg/stacks"
	tool "github.com/satai-labs/go-satai/pkg/tool"
	version "github.com/satai-labs/go-satai/pkg/version"
	wallet "github.com/satai-labs/go-satai/pkg/wallet"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// HTTP options
	HTTP struct {
		Addr    string        `name:"addr" default:"localhost:8080" help:"HTTP listen address"`
		Prefix  string        `name:"prefix" default:"/api/v1" help:"HTTP path prefix"`
		Origin  string        `name:"origin" default:"*" help:"CORS origin"`
		Timeout time.Duration `name:"timeout" help:"HTTP client timeout"`
	} `embed:"" prefix:"http."`

	// Model provider
	OpenAI `embed:"" help:"Model provider configuration"`

	// Tools
	CoinMarketCap `embed:"" help:"CoinMarketCap configuration"`
	Hiro          `embed:"" help:"Hiro configuration"`
	CoinGecko     `embed:"" help:"CoinGecko MCP configuration"`

	// Prompt
	SystemPrompt string `name:"system-prompt" help:"Override the system prompt" optional:""`

	// Context
	ctx      context.Context
	tracer   trace.Tracer
	config   *Config
	execName string
}

type OpenAI struct {
	OpenAIKey      string `env:"OPENAI_API_KEY" help:"API key for the OpenAI-compatible endpoint"`
	OpenAIEndpoint string `name:"openai-endpoint" env:"OPENAI_ENDPOINT" help:"OpenAI-compatible endpoint URL"`
	Model          string `name:"model" env:"OPENAI_MODEL" help:"Model name"`
}

type CoinMarketCap struct {
	CoinMarketCapKey string `env:"COINMARKETCAP_API_KEY" help:"CoinMarketCap API key"`
}

type Hiro struct {
	HiroKey string `env:"HIRO_API_KEY" help:"Hiro API key (optional, raises rate limits)"`
}

type CoinGecko struct {
	CoinGeckoKey string `env:"COINGECKO_API_KEY" help:"CoinGecko demo API key for the MCP server"`
	MCPEndpoint  string `name:"mcp-endpoint" env:"COINGECKO_MCP_URL" help:"CoinGecko MCP endpoint URL"`
}

type CLI struct {
	Globals

	// Commands
	Chat    ChatCommand    `cmd:"" help:"Send a message to the assistant"`
	Version VersionCommand `cmd:"" help:"Show version information"`
	ToolCommands
	ServerCommands
}

type VersionCommand struct{}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Endpoint for the model provider when none is configured
	defaultEndpoint = "https://api.tensoropera.ai/v1"

	// Endpoint for the CoinGecko MCP server when none is configured
	defaultMCPEndpoint = "https://mcp.api.coingecko.com/mcp"
)

// Prompt sent with every turn when none is configured
const defaultSystemPrompt = `You are SatAI, an AI assistant designed to help users interact with sBTC. Your main tasks include assisting users in transferring sBTC, checking cryptocurrency prices, analyzing sBTC transactions, and providing insights into their blockchain activity. You respond in a natural, conversational manner and simplify complex blockchain operations.
Your goal is to make sBTC and blockchain technology accessible to everyone, regardless of their technical background. You will assist the user with tasks like:
Sending and receiving sBTC by accepting natural language commands like “Send 1 sBTC to [address].”
Providing real-time price data for cryptocurrencies.
Analyzing sBTC transactions and providing insights.
Offering general support and guidance regarding the blockchain and sBTC.
Always ensure that you:
Prompt for confirmations before any transactions.
Ensure the security of transactions by only asking for confirmation after the user has reviewed transaction details.
Maintain clarity and simplicity in your responses to keep the process intuitive for non-technical users.
Remember: You are a helpful assistant, ensuring that the user's interaction with blockchain technology is as easy as possible. Aim to always provide the necessary information and facilitate smooth, seamless transactions.`

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("sBTC assistant command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()
	cli.Globals.tracer = otel.Tracer(cli.Globals.execName)

	// Load the configuration file
	config, err := NewConfig(cli.Globals.execName)
	cmd.FatalIfErrorf(err)
	cli.Globals.config = config

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	metadata := version.Map(ctx.execName)
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		fmt.Printf("%s: %s\n", key, metadata[key])
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// ClientOpts returns the client options derived from the global flags
func (g *Globals) ClientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.HTTP.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.HTTP.Timeout))
	}
	return opts
}

// Toolkit assembles the toolkit from the configured tool sources
func (g *Globals) Toolkit(ctx context.Context) (*tool.Toolkit, error) {
	// Wallet tools are always available
	toolkit, err := tool.NewToolkit(wallet.NewTools()...)
	if err != nil {
		return nil, err
	}

	// Balance tool works without a key, subject to public rate limits
	if tools, err := stacks.NewTools(g.HiroKey, g.ClientOpts()...); err != nil {
		return nil, err
	} else if err := toolkit.Register(tools...); err != nil {
		return nil, err
	}

	// Price tools
	if g.CoinMarketCapKey != "" {
		if tools, err := coinmarketcap.NewTools(g.CoinMarketCapKey, g.ClientOpts()...); err != nil {
			return nil, err
		} else if err := toolkit.Register(tools...); err != nil {
			return nil, err
		}
	}

	// Remote market data tools
	if g.CoinGeckoKey != "" {
		opts := append(g.ClientOpts(), client.OptHeader("x_cg_demo_api_key", g.CoinGeckoKey))
		info := mcp.ClientInfo{Name: g.execName, Version: version.Version()}
		if tools, err := mcp.NewTools(ctx, g.mcpEndpoint(), info, opts...); err != nil {
			return nil, err
		} else if err := toolkit.Register(tools...); err != nil {
			return nil, err
		}
	}

	return toolkit, nil
}

// Manager creates the agent manager with the model provider and toolkit
func (g *Globals) Manager(ctx context.Context) (*agent.Manager, error) {
	// Create the model provider
	opts := append(g.ClientOpts(), client.OptEndpoint(g.endpoint()))
	provider, err := openai.New(g.OpenAIKey, opts...)
	if err != nil {
		return nil, err
	}
	provider.SetModel(g.model())

	// Assemble the toolkit
	toolkit, err := g.Toolkit(ctx)
	if err != nil {
		return nil, err
	}

	// Create the manager
	return agent.NewManager(provider,
		agent.WithToolkit(toolkit),
		agent.WithTracer(g.tracer),
		agent.WithSystemPrompt(g.systemPrompt()),
	)
}

// endpoint resolves the model endpoint: flag, then config, then default
func (g *Globals) endpoint() string {
	if g.OpenAIEndpoint != "" {
		return g.OpenAIEndpoint
	}
	if g.config.Endpoint != "" {
		return g.config.Endpoint
	}
	return defaultEndpoint
}

// model resolves the model name: flag, then config, then provider default
func (g *Globals) model() string {
	if g.Model != "" {
		return g.Model
	}
	return g.config.Model
}

// systemPrompt resolves the system prompt: flag, then config, then default
func (g *Globals) systemPrompt() string {
	if g.SystemPrompt != "" {
		return g.SystemPrompt
	}
	if g.config.SystemPrompt != "" {
		return g.config.SystemPrompt
	}
	return defaultSystemPrompt
}

// mcpEndpoint resolves the MCP endpoint: flag, then config, then default
func (g *Globals) mcpEndpoint() string {
	if g.MCPEndpoint != "" {
		return g.MCPEndpoint
	}
	if g.config.MCPEndpoint != "" {
		return g.config.MCPEndpoint
	}
	return defaultMCPEndpoint
}
