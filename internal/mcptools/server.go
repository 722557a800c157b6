// Package mcptools exposes the content operations as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
)

const (
	serverName = "blogsmith"

	statusURI = "blogsmith://status"
)

// Generator is the subset of the content service the tools call.
type Generator interface {
	GenerateBlogPostContent(ctx context.Context, topic string) (*domain.GeneratedContent, error)
	GenerateTrendingTopics(ctx context.Context) (*domain.TrendingTopicsResult, error)
	Status() service.Status
}

// Server wraps an MCP server bound to a Generator.
type Server struct {
	gen       Generator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools and resources.
func NewServer(gen Generator, version string, logger *slog.Logger) *Server {
	s := &Server{
		gen:    gen,
		logger: logger,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Handler returns the streamable HTTP transport for the server.
func (s *Server) Handler() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

func (s *Server) registerTools() {
	contentTool := mcp.NewTool("generate_blog_content",
		mcp.WithDescription("Generate blog post materials for a topic: three titles, a meta description, keywords, a markdown draft and an image prompt."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Subject of the blog post"),
		),
	)
	s.mcpServer.AddTool(contentTool, s.handleGenerateContent)

	trendingTool := mcp.NewTool("trending_topics",
		mcp.WithDescription("List current trending topics suitable for general audience blog posts, with the web sources used."),
	)
	s.mcpServer.AddTool(trendingTool, s.handleTrendingTopics)
}

func (s *Server) registerResources() {
	statusResource := mcp.NewResource(statusURI,
		"Service status",
		mcp.WithMIMEType("application/json"),
		mcp.WithResourceDescription("Provider, models and whether a model credential is configured"),
	)
	s.mcpServer.AddResource(statusResource, s.handleStatus)
}

func (s *Server) handleGenerateContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := request.GetString("topic", "")

	content, err := s.gen.GenerateBlogPostContent(ctx, topic)
	if err != nil {
		s.logger.Warn("mcp content tool failed", "kind", domain.KindOf(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(content)
}

func (s *Server) handleTrendingTopics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.gen.GenerateTrendingTopics(ctx)
	if err != nil {
		s.logger.Warn("mcp trending tool failed", "kind", domain.KindOf(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleStatus(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.gen.Status())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      statusURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
