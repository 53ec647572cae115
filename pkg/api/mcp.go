package api

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/LeandroLuccerini/similarity/pkg/kit"
	"github.com/LeandroLuccerini/similarity/pkg/similarity"
)

// RegisterMCPTools registers the similarity MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, eps Endpoints) {
	kinds := kindNames()

	kit.RegisterMCPTool(srv, mcp.NewTool("similarity",
		mcp.WithDescription("Score how similar two values are, from 0 (unrelated) to 1 (identical)."),
		mcp.WithString("type", mcp.Required(), mcp.Enum(kinds...), mcp.Description("Similarity strategy")),
		mcp.WithString("a", mcp.Required(), mcp.Description("First value")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Second value")),
	), eps.Similarity, decodeSimilarity)

	kit.RegisterMCPTool(srv, mcp.NewTool("similarity_batch",
		mcp.WithDescription(fmt.Sprintf("Score up to %d pairs with one strategy. Invalid pairs are reported inline.", MaxBatchPairs)),
		mcp.WithString("type", mcp.Required(), mcp.Enum(kinds...), mcp.Description("Similarity strategy")),
		mcp.WithArray("pairs", mcp.Required(),
			mcp.Description(`Pairs to score, as objects {"a": ..., "b": ...}`),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"a": map[string]any{"type": "string"},
					"b": map[string]any{"type": "string"},
				},
				"required": []string{"a", "b"},
			}),
		),
	), eps.Batch, decodeBatch)

	kit.RegisterMCPTool(srv, mcp.NewTool("normalize",
		mcp.WithDescription("Show the canonical form a value is compared under."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(NormalizeString, NormalizeDate), mcp.Description("Normalizer")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to normalize")),
	), eps.Normalize, decodeNormalize)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_types",
		mcp.WithDescription("List the supported similarity strategies."),
	), eps.ListTypes, func(map[string]any) (any, error) { return nil, nil })
}

func kindNames() []string {
	kinds := similarity.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

func decodeSimilarity(args map[string]any) (any, error) {
	var req similarityReq
	var err error
	if req.Type, err = kit.StringArg(args, "type"); err != nil {
		return nil, err
	}
	if req.A, err = kit.StringArg(args, "a"); err != nil {
		return nil, err
	}
	if req.B, err = kit.StringArg(args, "b"); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeBatch(args map[string]any) (any, error) {
	typ, err := kit.StringArg(args, "type")
	if err != nil {
		return nil, err
	}
	req := &batchReq{Type: typ}

	// Some clients send the array JSON-encoded in a string.
	raw := args["pairs"]
	if s, ok := raw.(string); ok {
		if err := json.Unmarshal([]byte(s), &req.Pairs); err != nil {
			return nil, fmt.Errorf("pairs: %w", err)
		}
		return req, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("pairs must be an array")
	}
	for i, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pairs[%d] must be an object", i)
		}
		a, err := kit.StringArg(obj, "a")
		if err != nil {
			return nil, fmt.Errorf("pairs[%d]: %w", i, err)
		}
		b, err := kit.StringArg(obj, "b")
		if err != nil {
			return nil, fmt.Errorf("pairs[%d]: %w", i, err)
		}
		req.Pairs = append(req.Pairs, pairReq{A: a, B: b})
	}
	return req, nil
}

func decodeNormalize(args map[string]any) (any, error) {
	kind, err := kit.StringArg(args, "kind")
	if err != nil {
		return nil, err
	}
	value, err := kit.StringArg(args, "value")
	if err != nil {
		return nil, err
	}
	return &normalizeReq{Kind: kind, Value: value}, nil
}
