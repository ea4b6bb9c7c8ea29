package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"powerpages/internal/adapters/console"
	"powerpages/internal/application"
	"powerpages/internal/application/commands"
	"powerpages/internal/ports"
)

// previewOptions never touch the database or the sync directory.
var previewOptions = commands.SyncOptions{DryRun: true, NoInteractive: true}

// RegisterPreviewTools adds dry-run dump and load tools to the MCP server.
func RegisterPreviewTools(s *server.MCPServer, pages ports.PageRepository, dir ports.SyncDirectory, log logrus.FieldLogger) {
	p := &previewer{pages: pages, dir: dir, log: log}
	s.AddTool(previewDumpTool(), p.handler(func(deps commands.Collaborators, root string) syncCommand {
		return commands.NewDumpCommand(deps, root, previewOptions)
	}))
	s.AddTool(previewLoadTool(), p.handler(func(deps commands.Collaborators, root string) syncCommand {
		return commands.NewLoadCommand(deps, root, previewOptions)
	}))
}

type syncCommand interface {
	Execute(ctx context.Context) (*commands.SyncResult, error)
}

type previewer struct {
	pages ports.PageRepository
	dir   ports.SyncDirectory
	log   logrus.FieldLogger
}

// handler runs the command with a reporter writing into the tool result.
func (p *previewer) handler(build func(commands.Collaborators, string) syncCommand) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("root_url", "/")

		var report bytes.Buffer
		deps := commands.Collaborators{
			Pages:    p.pages,
			Dir:      p.dir,
			Reporter: console.NewReporter(&report),
			Log:      p.log,
		}

		_, err := build(deps, root).Execute(ctx)
		var failed *application.FailedItemsError
		switch {
		case err == nil:
			return mcp.NewToolResultText(report.String()), nil
		case errors.As(err, &failed):
			return mcp.NewToolResultError(fmt.Sprintf("%s\n%v", report.String(), err)), nil
		default:
			return toolError(err)
		}
	}
}

func previewDumpTool() mcp.Tool {
	return mcp.NewTool("preview_dump",
		mcp.WithDescription("Show which page files a dump would create, modify or delete, without changing anything. Lines are '<status> <path>' followed by a summary."),
		mcp.WithString("root_url",
			mcp.Description("Root page URL of the dump. Defaults to /."),
		),
	)
}

func previewLoadTool() mcp.Tool {
	return mcp.NewTool("preview_load",
		mcp.WithDescription("Show which pages a load would create, modify or delete, without changing anything. 's' marks changes refused because the page was modified in the admin."),
		mcp.WithString("root_url",
			mcp.Description("Root page URL of the load. Defaults to /."),
		),
	)
}
