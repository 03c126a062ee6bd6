package main

import (
	"fmt"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	otel "github.com/mutablelogic/go-client/pkg/otel"

	agent "github.com/satai-labs/go-satai/pkg/agent"
	opt "github.com/satai-labs/go-satai/pkg/opt"
	render "github.com/satai-labs/go-satai/pkg/render"
	schema "github.com/satai-labs/go-satai/pkg/schema"
	ui "github.com/satai-labs/go-satai/pkg/ui"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

var (
	roleStyle = lipgloss.NewStyle().Bold(true)
)

type ChatCommand struct {
	Text     string   `arg:"" help:"User input text"`
	Tool     []string `name:"tool" help:"Tool names to include (may be repeated; empty means all)" optional:""`
	NoStream bool     `name:"no-stream" help:"Wait for the complete response instead of streaming"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCommand) Run(ctx *Globals) (err error) {
	manager, err := ctx.Manager(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ChatCommand")
	defer func() { endSpan(err) }()

	// Build request
	req := schema.ChatRequest{
		Messages: []schema.Message{schema.NewMessage(schema.RoleUser, cmd.Text)},
		Tools:    cmd.Tool,
	}

	// Stream assistant text and tool views as they arrive
	var opts []opt.Opt
	if !cmd.NoStream {
		opts = append(opts, opt.WithStream(func(role, text string) {
			fmt.Print(text)
		}))
		opts = append(opts, agent.WithInvocationFn(func(invocation schema.Invocation) {
			if view := render.Render(invocation); view != nil {
				fmt.Println(ui.View(*view))
			}
		}))
	}

	// Send request
	response, err := manager.Chat(parent, req, opts...)
	if err != nil {
		return err
	}

	// When streaming, the text has already been printed
	if !cmd.NoStream {
		fmt.Println()
		return nil
	}

	// Render the tool views executed during the turn
	for _, view := range render.RenderAll(response.Invocations) {
		if view.Kind == render.ViewLoading {
			continue
		}
		fmt.Println(ui.View(view))
	}

	// Prepend role
	if role := response.Role; role != "" {
		fmt.Println(roleStyle.Render(role) + ": " + response.Content)
	} else {
		fmt.Println(response.Content)
	}
	return nil
}
