package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/vantage/internal/models"
)

// mcpHandler registers every catalog tool on the app's MCP server and returns
// the streamable HTTP transport for it.
func (s *Server) mcpHandler() http.Handler {
	catalog := buildToolCatalog()
	for _, def := range catalog {
		s.app.MCPServer.AddTool(toolFromDefinition(def), s.toolHandler(def))
	}
	s.logger.Debug().Int("tools", len(catalog)).Msg("MCP tools registered")

	return mcpserver.NewStreamableHTTPServer(s.app.MCPServer,
		mcpserver.WithStateLess(true),
	)
}

// toolFromDefinition converts a catalog entry into an MCP tool schema.
func toolFromDefinition(def models.ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, p := range def.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		switch p.Type {
		case "number":
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case "array":
			props = append(props, mcp.Items(map[string]interface{}{"type": p.Items}))
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}

// toolHandler serves a tool call through the REST route it maps to and
// returns the markdown rendering.
func (s *Server) toolHandler(def models.ToolDefinition) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := buildToolRequest(ctx, def, request.GetArguments())
		if err != nil {
			return errorResult("Error: " + err.Error()), nil
		}

		rec := newCaptureWriter()
		s.mux.ServeHTTP(rec, req)

		if rec.status >= http.StatusBadRequest {
			s.logger.Debug().Str("tool", def.Name).Int("status", rec.status).Msg("Tool call failed")
			return errorResult("Error: " + errorMessage(rec)), nil
		}
		return textResult(rec.body.String()), nil
	}
}

// buildToolRequest maps tool arguments onto the path, query and body of the tool's route.
func buildToolRequest(ctx context.Context, def models.ToolDefinition, args map[string]interface{}) (*http.Request, error) {
	path := def.Path
	query := url.Values{}
	body := map[string]interface{}{}

	for _, p := range def.Params {
		v, ok := args[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, fmt.Errorf("%s parameter is required", p.Name)
			}
			continue
		}

		switch p.In {
		case "path":
			sv := strings.TrimSpace(argString(v))
			if sv == "" {
				return nil, fmt.Errorf("%s parameter is required", p.Name)
			}
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(sv))
		case "query":
			if sv := argString(v); sv != "" {
				query.Set(p.Name, sv)
			}
		case "body":
			body[p.Name] = v
		}
	}
	query.Set("format", "markdown")

	var reader io.Reader
	if def.Method != http.MethodGet {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode arguments: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, def.Method, path+"?"+query.Encode(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// argString renders a JSON argument value as a query or path string.
func argString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, argString(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

// errorMessage extracts the error text from a captured JSON error response.
func errorMessage(rec *captureWriter) string {
	var resp ErrorResponse
	if err := json.Unmarshal(rec.body.Bytes(), &resp); err != nil || resp.Error == "" {
		return fmt.Sprintf("request failed with status %d", rec.status)
	}
	if len(resp.Failures) > 0 {
		return resp.Error + "\n- " + strings.Join(resp.Failures, "\n- ")
	}
	return resp.Error
}

// captureWriter buffers a handler response served in-process.
type captureWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: http.Header{}, status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(status int)      { c.status = status }
func (c *captureWriter) Write(b []byte) (int, error) { return c.body.Write(b) }

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
