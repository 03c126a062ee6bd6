package main

import (
	"encoding/json"
	"fmt"

	// Packages
	tool "github.com/satai-labs/go-satai/pkg/tool"
	table "github.com/satai-labs/go-satai/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List available tools"`
	ToolInfo  ToolInfoCommand  `cmd:"" name:"tool" help:"Show detailed information about a tool"`
	RunTool   RunToolCommand   `cmd:"" name:"run" help:"Run a tool with JSON input"`
}

type ListToolsCommand struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

type ToolInfoCommand struct {
	Name string `arg:"" name:"name" help:"Tool name"`
	JSON bool   `name:"json" help:"Output as JSON"`
}

type RunToolCommand struct {
	Name  string          `arg:"" name:"name" help:"Tool name"`
	Input json.RawMessage `arg:"" name:"input" optional:"" help:"JSON input for the tool (optional)"`
}

// toolList renders tools as a table
type toolList []tool.Tool

var _ table.TableData = (toolList)(nil)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit(ctx.ctx)
	if err != nil {
		return err
	}

	tools := toolkit.Tools()
	if cmd.JSON {
		type toolInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		output := make([]toolInfo, 0, len(tools))
		for _, t := range tools {
			output = append(output, toolInfo{
				Name:        t.Name(),
				Description: t.Description(),
			})
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Println(table.Render(toolList(tools)))
	}

	return nil
}

func (cmd *ToolInfoCommand) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit(ctx.ctx)
	if err != nil {
		return err
	}

	// Lookup the tool
	t := toolkit.Lookup(cmd.Name)
	if t == nil {
		return fmt.Errorf("tool not found: %q", cmd.Name)
	}

	// Get the schema
	schema, err := t.Schema()
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}

	if cmd.JSON {
		type toolDetail struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Schema      any    `json:"schema,omitempty"`
		}
		data, err := json.MarshalIndent(toolDetail{
			Name:        t.Name(),
			Description: t.Description(),
			Schema:      schema,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Name: %s\n", t.Name())
		fmt.Printf("Description: %s\n", t.Description())
		if schema != nil {
			data, err := json.MarshalIndent(schema, "  ", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("\nSchema:\n  %s\n", string(data))
		}
	}

	return nil
}

func (cmd *RunToolCommand) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit(ctx.ctx)
	if err != nil {
		return err
	}

	// Prepare input (nil if not provided)
	var input any
	if len(cmd.Input) > 0 {
		input = cmd.Input
	}

	// Run the tool through the toolkit, which validates the input
	result, err := toolkit.Run(ctx.ctx, cmd.Name, input)
	if err != nil {
		return err
	}

	// Output the result as JSON
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t toolList) Header() []string {
	return []string{"Name", "Description"}
}

func (t toolList) Len() int {
	return len(t)
}

func (t toolList) Row(i int) []any {
	return []any{table.Bold{Value: t[i].Name()}, t[i].Description()}
}
