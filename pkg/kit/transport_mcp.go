package kit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPDecoder extracts the typed endpoint request from MCP tool arguments.
type MCPDecoder func(args map[string]any) (any, error)

// RegisterMCPTool registers an Endpoint as an MCP tool on the given server.
// Endpoint errors come back as tool errors, not protocol errors, so the model
// can read them.
func RegisterMCPTool(srv *server.MCPServer, tool mcp.Tool, endpoint Endpoint, decode MCPDecoder) {
	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request, err := decode(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		resp, err := endpoint(WithTransport(ctx, "mcp"), request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

// StringArg returns args[name] when it is a string.
func StringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return v, nil
}
