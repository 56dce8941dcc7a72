// Package mcp exposes the morph engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/value"
)

// resultsURI lists published results.
const resultsURI = "morph://results"

// TransformArgs are the arguments of the transform_config tool.
type TransformArgs struct {
	Config string `json:"config"`
	Format string `json:"format,omitempty"`
	Name   string `json:"name,omitempty"`
}

// ResultArgs are the arguments of the get_result tool.
type ResultArgs struct {
	Name string `json:"name"`
}

// TransformResponse is the structured output shared by the tools.
type TransformResponse struct {
	Name   string    `json:"name,omitempty" jsonschema_description:"Name the result was published under"`
	Result value.Map `json:"result" jsonschema_description:"The transformed configuration"`
}

// Engine defines the interface required by the MCP server to interact with morph.
type Engine interface {
	TransformDocument(ctx context.Context, data []byte, format codec.Format) (value.Map, error)
	Publish(ctx context.Context, name string, result value.Map) error
	Result(ctx context.Context, name string) (value.Map, error)
	Results(ctx context.Context) ([]string, error)
}

// Server wraps the morph Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("morph-mcp", morph.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: transform_config
	transformTool := mcp.NewTool("transform_config",
		mcp.WithDescription("Transform a configuration mapping. Texts are re-cased or reversed, integers are rewritten by position and long lists keep only doubled numbers."),
		mcp.WithString("config", mcp.Required(), mcp.Description("The configuration document as JSON or YAML text")),
		mcp.WithString("format", mcp.Description("Document format: json or yaml (default yaml, which also accepts JSON)")),
		mcp.WithString("name", mcp.Description("Publish the result under this name (optional)")),
		mcp.WithOutputSchema[TransformResponse](),
	)
	s.mcpServer.AddTool(transformTool, mcp.NewStructuredToolHandler(s.handleTransform))

	// TOOL: get_result
	resultTool := mcp.NewTool("get_result",
		mcp.WithDescription("Fetch a previously published transform result."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Result name")),
		mcp.WithOutputSchema[TransformResponse](),
	)
	s.mcpServer.AddTool(resultTool, mcp.NewStructuredToolHandler(s.handleResult))
}

func (s *Server) handleTransform(ctx context.Context, request mcp.CallToolRequest, args TransformArgs) (TransformResponse, error) {
	if strings.TrimSpace(args.Config) == "" {
		return TransformResponse{}, errors.New("config is required")
	}

	format := codec.FormatYAML
	if args.Format != "" {
		f, err := codec.ParseFormat(args.Format)
		if err != nil {
			return TransformResponse{}, err
		}
		format = f
	}

	result, err := s.engine.TransformDocument(ctx, []byte(args.Config), format)
	if err != nil {
		return TransformResponse{}, fmt.Errorf("transform failed: %w", err)
	}

	if args.Name != "" {
		if err := s.engine.Publish(ctx, args.Name, result); err != nil {
			return TransformResponse{}, err
		}
	}

	return TransformResponse{Name: args.Name, Result: result}, nil
}

func (s *Server) handleResult(ctx context.Context, request mcp.CallToolRequest, args ResultArgs) (TransformResponse, error) {
	result, err := s.engine.Result(ctx, args.Name)
	if err != nil {
		return TransformResponse{}, err
	}
	return TransformResponse{Name: args.Name, Result: result}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: morph://results
	s.mcpServer.AddResource(mcp.NewResource(resultsURI, "Published Results",
		mcp.WithMIMEType("application/json"),
	), s.readResults)
}

func (s *Server) readResults(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.Results(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resultsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
