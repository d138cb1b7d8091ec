// Package tools maps the ThousandEyes tool catalog onto v7 API calls.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/thousandeyes-adapter/internal/te"
)

// Register adds every ThousandEyes tool to the MCP server.
func Register(s *server.MCPServer, client *te.Client) {
	s.AddTool(mcp.Tool{
		Name:        "list_tests",
		Description: "List configured ThousandEyes tests, optionally filtered by name or type.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"aid":           aidProp(),
				"name_contains": strProp("Optional substring to match against test names"),
				"test_type":     strProp("Optional test type filter (e.g. 'http-server', 'agent-to-agent')"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.ListTests(ctx, req.GetInt("aid", 0),
			req.GetString("name_contains", ""), req.GetString("test_type", ""))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "list_agents",
		Description: "List ThousandEyes agents, optionally filtered by agent type.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"agent_types": strProp("Optional agent type filter (e.g. 'cloud', 'enterprise')"),
				"aid":         aidProp(),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.ListAgents(ctx, req.GetString("agent_types", ""), req.GetInt("aid", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_test_results",
		Description: "Get results for a test and result type (e.g. 'network', 'http-server').",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"test_id":   strProp("The test ID"),
				"test_type": strProp("Result type: 'network', 'http-server', 'page-load', etc."),
				"window":    windowProp(),
				"from":      strProp("Optional range start (ISO timestamp)"),
				"to":        strProp("Optional range end (ISO timestamp)"),
				"aid":       aidProp(),
				"agent_id":  intProp("Optional agent ID to scope results to"),
			},
			Required: []string{"test_id", "test_type"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		testID, err := req.RequireString("test_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		testType, err := req.RequireString("test_type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetTestResults(ctx, testID, testType,
			windowFrom(req), req.GetInt("aid", 0), req.GetInt("agent_id", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_path_vis",
		Description: "Get path visualization (hop-by-hop) results for a test.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"test_id":   strProp("The test ID"),
				"window":    windowProp(),
				"from":      strProp("Optional range start (ISO timestamp)"),
				"to":        strProp("Optional range end (ISO timestamp)"),
				"aid":       aidProp(),
				"agent_id":  intProp("Optional agent ID to scope results to"),
				"direction": strProp("Optional direction filter ('to-target', 'from-target', 'bidirectional')"),
			},
			Required: []string{"test_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		testID, err := req.RequireString("test_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetPathVis(ctx, testID, windowFrom(req),
			req.GetInt("aid", 0), req.GetInt("agent_id", 0), req.GetString("direction", ""))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "list_dashboards",
		Description: "List ThousandEyes dashboards, optionally filtered by title.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"aid":            aidProp(),
				"title_contains": strProp("Optional substring to match against dashboard titles"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.ListDashboards(ctx, req.GetInt("aid", 0), req.GetString("title_contains", ""))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get a dashboard definition by ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dashboard_id": strProp("The dashboard ID"),
				"aid":          aidProp(),
			},
			Required: []string{"dashboard_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := req.RequireString("dashboard_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetDashboard(ctx, dashboardID, req.GetInt("aid", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_dashboard_widget",
		Description: "Get the data behind one dashboard widget.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dashboard_id": strProp("The dashboard ID"),
				"widget_id":    strProp("The widget ID"),
				"window":       windowProp(),
				"from":         strProp("Optional range start (ISO timestamp)"),
				"to":           strProp("Optional range end (ISO timestamp)"),
				"aid":          aidProp(),
			},
			Required: []string{"dashboard_id", "widget_id"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := req.RequireString("dashboard_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		widgetID, err := req.RequireString("widget_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := client.GetDashboardWidget(ctx, dashboardID, widgetID, windowFrom(req), req.GetInt("aid", 0))
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_users",
		Description: "List the users visible to the configured token.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetUsers(ctx)
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_account_groups",
		Description: "List the account groups visible to the configured token.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.GetAccountGroups(ctx)
		return respond(body, err)
	})

	s.AddTool(mcp.Tool{
		Name:        "list_alerts",
		Description: "List ThousandEyes alerts, optionally filtered by test or alert type.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"window":     windowProp(),
				"from":       strProp("Optional range start (ISO timestamp)"),
				"to":         strProp("Optional range end (ISO timestamp)"),
				"aid":        aidProp(),
				"test_id":    intProp("Optional test ID to filter by"),
				"alert_type": strProp("Optional alert type filter"),
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := client.ListAlerts(ctx, windowFrom(req),
			req.GetInt("aid", 0), req.GetInt("test_id", 0), req.GetString("alert_type", ""))
		return respond(body, err)
	})
}

func respond(body []byte, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return toolserver.Failure(err), nil
	}
	return toolserver.JSON(body), nil
}

func windowFrom(req mcp.CallToolRequest) te.Window {
	return te.Window{
		Window: req.GetString("window", ""),
		From:   req.GetString("from", ""),
		To:     req.GetString("to", ""),
	}
}

func strProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

func aidProp() map[string]interface{} {
	return intProp("Optional account group ID to scope the request to")
}

func windowProp() map[string]interface{} {
	return strProp("Optional relative time window (e.g. '1h', '7d'); takes precedence over from/to")
}
