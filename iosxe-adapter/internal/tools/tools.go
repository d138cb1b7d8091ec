// Package tools maps the IOS XE tool catalog onto SSH runner calls. Tools
// take a host and commands only; credentials never cross the tool boundary.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/iosxe-adapter/internal/device"
)

// Register adds the IOS XE tools to the MCP server.
func Register(s *server.MCPServer, runner *device.Runner) {
	s.AddTool(mcp.Tool{
		Name:        "show_command",
		Description: "Execute a 'show' command on an IOS XE device over SSH and return the raw output.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"host": map[string]interface{}{
					"type":        "string",
					"description": "Device hostname or IP address",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Show command to execute (e.g. 'show ip interface brief')",
				},
			},
			Required: []string{"host", "command"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		host, err := req.RequireString("host")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		command, err := req.RequireString("command")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := runner.Show(ctx, host, command)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.Text(out), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "config_command",
		Description: "Apply configuration commands to an IOS XE device over SSH and save the running config.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"host": map[string]interface{}{
					"type":        "string",
					"description": "Device hostname or IP address",
				},
				"commands": map[string]interface{}{
					"type":        "array",
					"description": "Configuration commands in order (e.g. ['interface gi0/1', 'no shutdown'])",
					"items":       map[string]interface{}{"type": "string"},
				},
			},
			Required: []string{"host", "commands"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		host, err := req.RequireString("host")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, _ := req.GetArguments()["commands"].([]any)
		commands := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok && s != "" {
				commands = append(commands, s)
			}
		}
		out, err := runner.Configure(ctx, host, commands)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.Text(out), nil
	})
}
