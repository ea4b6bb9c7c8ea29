package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"powerpages/internal/application/commands"
	"powerpages/internal/application/processors"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// RegisterReadTools adds the read-only page tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, pages ports.PageRepository, registry *processors.Registry) {
	s.AddTool(listPagesTool(), listPagesHandler(pages))
	s.AddTool(showPageTool(), showPageHandler(pages))
	s.AddTool(renderPageTool(), renderPageHandler(pages, registry))
}

// --- list_pages ---

func listPagesTool() mcp.Tool {
	return mcp.NewTool("list_pages",
		mcp.WithDescription("List page URLs and titles under a URL prefix. Pages modified in the admin since the last sync are marked with *."),
		mcp.WithString("prefix",
			mcp.Description("URL prefix, e.g. /docs/. Omit to list every page."),
		),
	)
}

func listPagesHandler(pages ports.PageRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prefix := req.GetString("prefix", "")

		list, err := commands.NewListPagesCommand(pages, prefix).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(list, formatPage)
	}
}

// --- show_page ---

func showPageTool() mcp.Tool {
	return mcp.NewTool("show_page",
		mcp.WithDescription("Show a page in the page file format used by the sync directory."),
		mcp.WithString("url",
			mcp.Description("Page URL, e.g. /about/"),
			mcp.Required(),
		),
	)
}

func showPageHandler(pages ports.PageRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := req.GetString("url", "")
		if url == "" {
			return toolError(fmt.Errorf("url is required"))
		}

		result, err := commands.NewShowPageCommand(pages, url).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Content), nil
	}
}

// --- render_page ---

func renderPageTool() mcp.Tool {
	return mcp.NewTool("render_page",
		mcp.WithDescription("Run a page through its page processor: returns the template source or the redirect target."),
		mcp.WithString("url",
			mcp.Description("Page URL, e.g. /about/"),
			mcp.Required(),
		),
	)
}

func renderPageHandler(pages ports.PageRepository, registry *processors.Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := req.GetString("url", "")
		if url == "" {
			return toolError(fmt.Errorf("url is required"))
		}

		result, err := commands.NewRenderPageCommand(pages, registry, url).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if !result.Accessible {
			return mcp.NewToolResultText(fmt.Sprintf("%s is not accessible (%s)", url, result.Processor)), nil
		}
		return mcp.NewToolResultText(result.Output), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatPage(p *domain.Page) string {
	marker := " "
	if p.LocallyEdited {
		marker = "*"
	}
	return fmt.Sprintf("%s %s  %s", marker, p.URL, p.Title)
}
