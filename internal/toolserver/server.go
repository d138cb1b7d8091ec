// Package toolserver wraps the MCP server plumbing shared by every adapter:
// construction, invocation logging, and serving over stdio or HTTP.
package toolserver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/metrics"
)

// Transport values accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// New constructs the MCP server for an adapter. Every tool handler runs
// behind a recovery wrapper and the logging/metrics middleware.
func New(name, version, instructions string, logger *zap.Logger) *server.MCPServer {
	return server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
		server.WithToolHandlerMiddleware(invocationMiddleware(name, logger)),
	)
}

// invocationMiddleware tags each tool call with an invocation ID, logs the
// outcome, and records metrics.
func invocationMiddleware(adapter string, logger *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			id := uuid.NewString()
			tool := req.Params.Name

			logger.Debug("tool.invoke",
				zap.String("invocation_id", id),
				zap.String("tool", tool))

			result, err := next(ctx, req)

			outcome := "ok"
			switch {
			case err != nil:
				outcome = "error"
			case result != nil && result.IsError:
				outcome = "tool_error"
			}
			metrics.ObserveTool(adapter, tool, outcome, start)

			logger.Info("tool.done",
				zap.String("invocation_id", id),
				zap.String("tool", tool),
				zap.String("outcome", outcome),
				zap.Duration("elapsed", time.Since(start)))

			return result, err
		}
	}
}

// Serve runs the MCP server until ctx is canceled. transport is "stdio" or
// "http"; the HTTP transport is the streamable variant the original servers
// exposed on MCP_HOST:MCP_PORT.
func Serve(ctx context.Context, logger *zap.Logger, s *server.MCPServer, transport, addr string) error {
	switch transport {
	case TransportStdio:
		logger.Info("mcp.serving", zap.String("transport", transport))
		if err := server.ServeStdio(s); err != nil {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil

	case TransportHTTP:
		httpServer := server.NewStreamableHTTPServer(s)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("mcp.serving",
				zap.String("transport", transport),
				zap.String("addr", addr))
			errCh <- httpServer.Start(addr)
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		}

	default:
		return fmt.Errorf("unknown MCP transport %q (want stdio or http)", transport)
	}
}
