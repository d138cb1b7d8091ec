// Package tools exposes the Splunk backend's tool catalog, forwarding each
// invocation over JSON-RPC.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/splunk-adapter/internal/splunk"
)

// Register adds every Splunk tool to the MCP server.
func Register(s *server.MCPServer, client *splunk.Client) {
	forwardNoArgs(s, client, "get_splunk_info",
		"Get Splunk instance information including version, licensing and deployment details.")
	forwardNoArgs(s, client, "get_indexes",
		"List all Splunk indexes with their properties.")
	forwardNoArgs(s, client, "get_user_list",
		"Get the list of Splunk users.")
	forwardNoArgs(s, client, "get_user_info",
		"Get information about the current Splunk user.")
	forwardNoArgs(s, client, "get_kv_store_collections",
		"Get KV Store collection statistics.")

	s.AddTool(mcp.Tool{
		Name:        "get_index_info",
		Description: "Get detailed information about a specific Splunk index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"index_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index to query",
				},
			},
			Required: []string{"index_name"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		indexName, err := req.RequireString("index_name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return forward(ctx, client, "get_index_info", map[string]any{"index_name": indexName})
	})

	s.AddTool(mcp.Tool{
		Name:        "run_splunk_query",
		Description: "Execute a Splunk SPL (Search Processing Language) query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "SPL query string (e.g. 'search index=_internal | stats count by sourcetype')",
				},
				"earliest_time": map[string]interface{}{
					"type":        "string",
					"description": "Start time for the search (default: -24h)",
					"default":     "-24h",
				},
				"latest_time": map[string]interface{}{
					"type":        "string",
					"description": "End time for the search (default: now)",
					"default":     "now",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 100)",
					"default":     100,
				},
			},
			Required: []string{"query"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return forward(ctx, client, "run_splunk_query", map[string]any{
			"query":         query,
			"earliest_time": req.GetString("earliest_time", "-24h"),
			"latest_time":   req.GetString("latest_time", "now"),
			"max_results":   req.GetInt("max_results", 100),
		})
	})

	s.AddTool(mcp.Tool{
		Name:        "get_metadata",
		Description: "Retrieve metadata about hosts, sources or sourcetypes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"metadata_type": map[string]interface{}{
					"type":        "string",
					"description": "Type of metadata: 'hosts', 'sources' or 'sourcetypes'",
				},
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Optional index name to filter results",
				},
				"earliest_time": map[string]interface{}{
					"type":        "string",
					"description": "Start time (default: -24h)",
					"default":     "-24h",
				},
				"latest_time": map[string]interface{}{
					"type":        "string",
					"description": "End time (default: now)",
					"default":     "now",
				},
			},
			Required: []string{"metadata_type"},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metadataType, err := req.RequireString("metadata_type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args := map[string]any{
			"metadata_type": metadataType,
			"earliest_time": req.GetString("earliest_time", "-24h"),
			"latest_time":   req.GetString("latest_time", "now"),
		}
		if index := req.GetString("index", ""); index != "" {
			args["index"] = index
		}
		return forward(ctx, client, "get_metadata", args)
	})

	s.AddTool(mcp.Tool{
		Name:        "get_knowledge_objects",
		Description: "Retrieve knowledge objects like saved searches, alerts and dashboards.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"object_type": map[string]interface{}{
					"type":        "string",
					"description": "Optional type filter (savedsearches, alerts, dashboards, etc.)",
				},
			},
		},
	}, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if objectType := req.GetString("object_type", ""); objectType != "" {
			args["object_type"] = objectType
		}
		return forward(ctx, client, "get_knowledge_objects", args)
	})
}

// forwardNoArgs registers a tool that takes no arguments and forwards to the
// backend tool of the same name.
func forwardNoArgs(s *server.MCPServer, client *splunk.Client, name, description string) {
	s.AddTool(mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return forward(ctx, client, name, nil)
	})
}

func forward(ctx context.Context, client *splunk.Client, name string, args map[string]any) (*mcp.CallToolResult, error) {
	body, err := client.CallTool(ctx, name, args)
	if err != nil {
		return toolserver.Failure(err), nil
	}
	return toolserver.JSON(body), nil
}
