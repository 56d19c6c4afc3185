package tools

import (
	"context"

	"github.com/google/uuid"
	"github.com/kayz/google-search/internal/logger"
	"github.com/kayz/google-search/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GoogleSearchName is the tool name exposed over MCP.
const GoogleSearchName = "google_search"

// GoogleSearchTool declares the google_search tool and its argument schema.
func GoogleSearchTool() mcp.Tool {
	return mcp.NewTool(GoogleSearchName,
		mcp.WithDescription("Search the web with Google Custom Search and return the top results as plain text"),
		mcp.WithString(search.ArgQuery,
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber(search.ArgNumResults,
			mcp.Description("Number of results to return (1-10, default 10)"),
			mcp.Min(search.MinResultCount),
			mcp.Max(search.MaxResultCount),
			mcp.DefaultNumber(search.DefaultResultCount),
		),
		mcp.WithString(search.ArgDateRestrict,
			mcp.Description("Restrict results by recency: d[N] days, w[N] weeks, m[N] months or y[N] years, e.g. m6"),
			mcp.Pattern("^[dwmy][0-9]+$"),
		),
		mcp.WithString(search.ArgLanguage,
			mcp.Description("Two-letter language code of the results, e.g. en or fr"),
		),
		mcp.WithString(search.ArgCountry,
			mcp.Description("Two-letter country code to boost results from, e.g. us"),
		),
		mcp.WithString(search.ArgSafeSearch,
			mcp.Description("Safe search level"),
			mcp.Enum(search.SafeSearchOff, search.SafeSearchMedium, search.SafeSearchHigh),
		),
	)
}

// GoogleSearchHandler serves google_search calls. Failures come back as
// error-flagged tool results, never as protocol errors.
func GoogleSearchHandler(svc *search.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		args := req.GetArguments()
		logger.Debug("[Tool] %s call %s with %d arguments", GoogleSearchName, callID, len(args))

		rs, err := svc.Search(ctx, args)
		if err != nil {
			logger.Warn("[Tool] %s call %s failed (%s): %v", GoogleSearchName, callID, search.KindOf(err), err)
			return mcp.NewToolResultError(search.FormatError(err)), nil
		}

		logger.Info("[Tool] %s call %s returned %d results", GoogleSearchName, callID, len(rs.Items))
		return mcp.NewToolResultText(search.FormatResults(rs)), nil
	}
}
