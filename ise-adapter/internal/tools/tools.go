// Package tools maps the ISE tool catalog onto ERS client calls. Most of
// the catalog is generated from the endpoint registry; a few search helpers
// are hand-written on top.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/ise-adapter/internal/ise"
)

// Register adds every ISE tool to the MCP server. The registry must have
// been validated by the caller.
func Register(s *server.MCPServer, client *ise.Client) {
	for _, ep := range ise.Endpoints {
		registerListTool(s, client, ep)
	}

	s.AddTool(mcp.Tool{
		Name:        "search_endpoint_by_mac",
		Description: "Search for a specific endpoint by MAC address.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mac_address": map[string]interface{}{
					"type":        "string",
					"description": "MAC address to search for (e.g. '00:50:56:C0:00:01')",
				},
			},
			Required: []string{"mac_address"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mac, err := req.RequireString("mac_address")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.SearchEndpointByMAC(ctx, mac)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "search_user_sessions",
		Description: "Search for active network access sessions by username.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Username to search for",
				},
			},
			Required: []string{"username"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		username, err := req.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.SearchUserSessions(ctx, username)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_device_compliance_status",
		Description: "Get compliance and profiling information for a device by MAC address.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mac_address": map[string]interface{}{
					"type":        "string",
					"description": "MAC address of the device to check",
				},
			},
			Required: []string{"mac_address"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mac, err := req.RequireString("mac_address")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status, err := client.DeviceComplianceStatus(ctx, mac)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		out, err := json.Marshal(status)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(out), nil
	})
}

// registerListTool exposes one ERS resource as a paginated list tool.
func registerListTool(s *server.MCPServer, client *ise.Client, ep ise.Endpoint) {
	filterDoc := "Filter in format 'field.OPERATION.value' (e.g. 'name.CONTAINS.switch')"
	if len(ep.Filterable) > 0 {
		filterDoc += ". Filterable fields: " + strings.Join(ep.Filterable, ", ")
	}

	s.AddTool(mcp.Tool{
		Name:        "get_" + ep.Name,
		Description: fmt.Sprintf("%s.", ep.Description),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filter_expression": map[string]interface{}{
					"type":        "string",
					"description": filterDoc,
				},
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number for pagination (default: 1)",
					"default":     1,
				},
				"size": map[string]interface{}{
					"type":        "number",
					"description": "Number of results per page (default: 20, max: 100)",
					"default":     20,
				},
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.List(ctx, ep,
			req.GetString("filter_expression", ""),
			req.GetInt("page", 1),
			req.GetInt("size", 20))
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})
}
