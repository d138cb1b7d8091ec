// Package tools maps the NetBox tool catalog onto REST client calls.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/netbox-adapter/internal/netbox"
)

// Register adds every NetBox tool to the MCP server.
func Register(s *server.MCPServer, client *netbox.Client) {
	s.AddTool(mcp.Tool{
		Name:        "get_devices",
		Description: "List devices in NetBox, optionally scoped to a site.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit":   limitProp(),
				"site_id": intProp("Optional site ID to filter by"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetDevices(ctx, req.GetInt("limit", 50), req.GetInt("site_id", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_device",
		Description: "Get one device from NetBox by ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"device_id": intProp("The device ID"),
			},
			Required: []string{"device_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetDevice(ctx, req.GetInt("device_id", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_sites",
		Description: "List sites in NetBox.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": limitProp(),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetSites(ctx, req.GetInt("limit", 50))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_ip_addresses",
		Description: "List IP addresses in NetBox, optionally scoped to a VRF.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit":  limitProp(),
				"vrf_id": intProp("Optional VRF ID to filter by"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetIPAddresses(ctx, req.GetInt("limit", 50), req.GetInt("vrf_id", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_prefixes",
		Description: "List prefixes in NetBox, optionally scoped to a VRF.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit":  limitProp(),
				"vrf_id": intProp("Optional VRF ID to filter by"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetPrefixes(ctx, req.GetInt("limit", 50), req.GetInt("vrf_id", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_vlans",
		Description: "List VLANs in NetBox, optionally scoped to a site.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit":   limitProp(),
				"site_id": intProp("Optional site ID to filter by"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetVLANs(ctx, req.GetInt("limit", 50), req.GetInt("site_id", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "search_netbox",
		Description: "Free-text search against one NetBox endpoint (e.g. 'dcim/devices', 'ipam/prefixes').",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"endpoint": map[string]interface{}{
					"type":        "string",
					"description": "The NetBox API endpoint to search (e.g. 'dcim/devices')",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search string",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results (default: 25)",
					"default":     25,
				},
			},
			Required: []string{"endpoint", "query"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		endpoint, err := req.RequireString("endpoint")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.Search(ctx, endpoint, query, req.GetInt("limit", 25))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "create_ip_address",
		Description: "Create an IP address object in NetBox.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"address": map[string]interface{}{
					"type":        "string",
					"description": "The IP address with prefix length (e.g. '10.0.0.1/24')",
				},
				"status": map[string]interface{}{
					"type":        "string",
					"description": "Object status (default: 'active')",
					"default":     "active",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Optional description",
				},
			},
			Required: []string{"address"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := req.RequireString("address")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.CreateIPAddress(ctx, address,
			req.GetString("status", "active"), req.GetString("description", ""))
		return respond(body, err)
	})
}

func respond(body []byte, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return toolserver.Failure(err), nil
	}
	return toolserver.JSON(body), nil
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

func limitProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Maximum number of results (default: 50)",
		"default":     50,
	}
}
