// Package tools maps the Meraki tool catalog onto Dashboard API calls, gated
// by the configured role.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/meraki-adapter/internal/meraki"
	"github.com/netops-mcp/adapters/meraki-adapter/pkg/config"
)

// Register adds the tools permitted for the given role. NOC gets monitoring
// plus firmware scheduling, SysAdmin is read-only, All gets everything.
func Register(s *server.MCPServer, client *meraki.Client, role string) {
	registerReadTools(s, client)
	if role == config.RoleNOC || role == config.RoleAll {
		registerFirmwareUpdateTool(s, client)
	}
}

func registerReadTools(s *server.MCPServer, client *meraki.Client) {
	s.AddTool(mcp.Tool{
		Name:        "get_organizations",
		Description: "List the Meraki organizations accessible with the configured API key.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetOrganizations(ctx)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_organization_networks",
		Description: "List the networks in a Meraki organization.",
		InputSchema: orgIDSchema(),
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		orgID, err := req.RequireString("organization_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetOrganizationNetworks(ctx, orgID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_organization_devices",
		Description: "List the devices in a Meraki organization.",
		InputSchema: orgIDSchema(),
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		orgID, err := req.RequireString("organization_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetOrganizationDevices(ctx, orgID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_organization_firmware_upgrades",
		Description: "List firmware upgrades across a Meraki organization.",
		InputSchema: orgIDSchema(),
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		orgID, err := req.RequireString("organization_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetOrganizationFirmwareUpgrades(ctx, orgID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_organization_licenses_overview",
		Description: "Get the license overview for a Meraki organization.",
		InputSchema: orgIDSchema(),
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		orgID, err := req.RequireString("organization_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetOrganizationLicensesOverview(ctx, orgID)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})
}

func registerFirmwareUpdateTool(s *server.MCPServer, client *meraki.Client) {
	s.AddTool(mcp.Tool{
		Name:        "update_network_firmware_upgrades",
		Description: "Schedule or reconfigure firmware upgrades for a Meraki network.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"network_id": map[string]interface{}{
					"type":        "string",
					"description": "The network ID (e.g. 'N_123456')",
				},
				"settings": map[string]interface{}{
					"type":        "object",
					"description": "Firmware upgrade settings forwarded to the Dashboard API (e.g. upgradeWindow, products)",
				},
			},
			Required: []string{"network_id", "settings"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		networkID, err := req.RequireString("network_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		settings, _ := req.GetArguments()["settings"].(map[string]any)
		body, err := client.UpdateNetworkFirmwareUpgrades(ctx, networkID, settings)
		if err != nil {
			return toolserver.Failure(err), nil
		}
		return toolserver.JSON(body), nil
	})
}

func orgIDSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"organization_id": map[string]interface{}{
				"type":        "string",
				"description": "The Meraki organization ID",
			},
		},
		Required: []string{"organization_id"},
	}
}
