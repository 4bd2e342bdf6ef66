package models

// MathResult is the outcome of an arithmetic helper.
type MathResult struct {
	Operation  string  `json:"operation"`
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
	Formatted  string  `json:"formatted"`
	Direction  string  `json:"direction,omitempty"` // percentage_change only
}

// WebResult is one web or news search hit.
type WebResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Source   string `json:"source,omitempty"`
	Date     string `json:"date,omitempty"`
}

// WebSearchResponse wraps the hits for a query.
type WebSearchResponse struct {
	Query   string      `json:"query"`
	Kind    string      `json:"kind"` // "web" or "news"
	Results []WebResult `json:"results"`
}

// ToolDefinition describes one tool and its HTTP mapping.
type ToolDefinition struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Method      string            `json:"method" yaml:"method"`
	Path        string            `json:"path" yaml:"path"`
	Params      []ParamDefinition `json:"params,omitempty" yaml:"params,omitempty"`
}

// ParamDefinition describes one tool parameter. In is "path", "query" or "body".
type ParamDefinition struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"` // "string", "number", "boolean" or "array"
	Description string `json:"description" yaml:"description"`
	Items       string `json:"items,omitempty" yaml:"items,omitempty"` // element type for arrays
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	In          string `json:"in" yaml:"in"`
}
