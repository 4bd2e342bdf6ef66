package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/models"
)

// Manifest describes the tool surface for external agent platforms.
type Manifest struct {
	SpecVersion string         `yaml:"spec_version"`
	Kind        string         `yaml:"kind"`
	Name        string         `yaml:"name"`
	Version     string         `yaml:"version"`
	Description string         `yaml:"description"`
	ServerURL   string         `yaml:"server_url,omitempty"`
	MCPEndpoint string         `yaml:"mcp_endpoint"`
	Tools       []ManifestTool `yaml:"tools"`
}

// ManifestTool is one tool with its HTTP binding and JSON schemas.
type ManifestTool struct {
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description"`
	Method       string     `yaml:"method"`
	Path         string     `yaml:"path"`
	InputSchema  *yaml.Node `yaml:"input_schema"`
	OutputSchema *yaml.Node `yaml:"output_schema,omitempty"`
}

// toolOutputs maps tools to the JSON body they return.
var toolOutputs = map[string]interface{}{
	"get_stock_price":            &models.Quote{},
	"get_company_profile":        &models.CompanyProfile{},
	"get_comprehensive_analysis": &models.ComprehensiveAnalysis{},
	"calculate_wacc":             &models.WACCResult{},
	"perform_dcf_analysis":       &models.DCFResult{},
	"dcf_sensitivity_analysis":   &models.SensitivityResult{},
	"research_note":              &models.ResearchNote{},
	"get_valuation":              &models.ValuationRecord{},
	"web_search":                 &models.WebSearchResponse{},
	"web_search_news":            &models.WebSearchResponse{},
}

// BuildManifest renders the tool catalog as a YAML manifest. serverURL may be empty.
func BuildManifest(serverURL string) ([]byte, error) {
	m := Manifest{
		SpecVersion: "v1",
		Kind:        "mcp",
		Name:        "vantage",
		Version:     common.GetVersion(),
		Description: "Equity research data and valuation tools: quotes, financial statements, WACC, DCF, sensitivity analysis, arithmetic helpers and web search.",
		ServerURL:   serverURL,
		MCPEndpoint: MCPPath,
	}

	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}

	for _, def := range buildToolCatalog() {
		input, err := yamlNode(inputSchema(def))
		if err != nil {
			return nil, fmt.Errorf("input schema for %s: %w", def.Name, err)
		}
		tool := ManifestTool{
			Name:        def.Name,
			Description: def.Description,
			Method:      def.Method,
			Path:        def.Path,
			InputSchema: input,
		}
		if out, ok := toolOutputs[def.Name]; ok {
			if tool.OutputSchema, err = yamlNode(reflector.Reflect(out)); err != nil {
				return nil, fmt.Errorf("output schema for %s: %w", def.Name, err)
			}
		} else if def.Path == "/api/math/"+def.Name {
			if tool.OutputSchema, err = yamlNode(reflector.Reflect(&models.MathResult{})); err != nil {
				return nil, fmt.Errorf("output schema for %s: %w", def.Name, err)
			}
		}
		m.Tools = append(m.Tools, tool)
	}

	return yaml.Marshal(&m)
}

// inputSchema builds the JSON schema of a tool's parameters.
func inputSchema(def models.ToolDefinition) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, p := range def.Params {
		prop := &jsonschema.Schema{Type: p.Type, Description: p.Description}
		if p.Type == "array" && p.Items != "" {
			prop.Items = &jsonschema.Schema{Type: p.Items}
		}
		schema.Properties.Set(p.Name, prop)
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// yamlNode converts v to a YAML node through its JSON encoding, keeping key order.
func yamlNode(v interface{}) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty schema")
	}
	node := doc.Content[0]
	blockStyle(node)
	return node, nil
}

// blockStyle drops the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// handleManifest handles GET /api/mcp/manifest.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	serverURL := ""
	if r.Host != "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		serverURL = scheme + "://" + r.Host
	}

	data, err := BuildManifest(serverURL)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build tool manifest")
		WriteError(w, http.StatusInternalServerError, "Failed to build manifest")
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
