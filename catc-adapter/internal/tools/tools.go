// Package tools maps the Catalyst Center tool catalog onto client calls.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/catc-adapter/internal/catc"
	"github.com/netops-mcp/adapters/internal/toolserver"
)

// Register adds every Catalyst Center tool to the MCP server. Each tool maps
// 1:1 to one client call and returns the upstream payload unmodified.
func Register(s *server.MCPServer, client *catc.Client) {
	s.AddTool(mcp.Tool{
		Name:        "get_network_devices",
		Description: "Get network devices from Catalyst Center, optionally filtered by hostname or device type.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"hostname": map[string]interface{}{
					"type":        "string",
					"description": "Optional device hostname to filter by",
				},
				"device_type": map[string]interface{}{
					"type":        "string",
					"description": "Optional device type to filter by (e.g. 'Switches and Hubs', 'Routers')",
				},
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetNetworkDevices(ctx, req.GetString("hostname", ""), req.GetString("device_type", ""))
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_device_detail",
		Description: "Get detailed information about a specific device.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"device_id": map[string]interface{}{
					"type":        "string",
					"description": "The device ID/UUID",
				},
			},
			Required: []string{"device_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceID, err := req.RequireString("device_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetDeviceDetail(ctx, deviceID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_sites",
		Description: "Get all sites from Catalyst Center.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetSites(ctx)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_site_topology",
		Description: "Get topology for a specific site.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"site_id": map[string]interface{}{
					"type":        "string",
					"description": "The site ID/UUID",
				},
			},
			Required: []string{"site_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		siteID, err := req.RequireString("site_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetSiteTopology(ctx, siteID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_clients",
		Description: "Get client health information from Catalyst Center.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of clients to return (default: 100)",
					"default":     100,
				},
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetClients(ctx, req.GetInt("limit", 100))
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_network_health",
		Description: "Get overall network health information.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetNetworkHealth(ctx)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_device_health",
		Description: "Get health information for a specific device.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"device_id": map[string]interface{}{
					"type":        "string",
					"description": "The device ID/UUID",
				},
			},
			Required: []string{"device_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceID, err := req.RequireString("device_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetDeviceHealth(ctx, deviceID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_issues",
		Description: "Get network issues from Catalyst Center, optionally filtered by priority (P1-P4) or status (ACTIVE, RESOLVED).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"priority": map[string]interface{}{
					"type":        "string",
					"description": "Optional priority filter (P1, P2, P3, P4)",
				},
				"status": map[string]interface{}{
					"type":        "string",
					"description": "Optional status filter (ACTIVE, RESOLVED)",
				},
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetIssues(ctx, req.GetString("priority", ""), req.GetString("status", ""))
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_templates",
		Description: "Get configuration templates from Catalyst Center.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetTemplates(ctx)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_compliance_detail",
		Description: "Get compliance details for a specific device.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"device_id": map[string]interface{}{
					"type":        "string",
					"description": "The device ID/UUID",
				},
			},
			Required: []string{"device_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceID, err := req.RequireString("device_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetComplianceDetail(ctx, deviceID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_events",
		Description: "Get events from Catalyst Center, optionally filtered by category or severity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Optional event category filter",
				},
				"severity": map[string]interface{}{
					"type":        "string",
					"description": "Optional severity filter (INFO, WARN, ERROR, ALERT, CRITICAL)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of events to return (default: 100)",
					"default":     100,
				},
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetEvents(ctx, req.GetString("category", ""), req.GetString("severity", ""), req.GetInt("limit", 100))
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})
}
