package server

import (
	"regexp"
	"strings"
	"testing"

	"github.com/bobmcallan/vantage/internal/services/finmath"
)

func TestBuildToolCatalog_ReturnsAllTools(t *testing.T) {
	catalog := buildToolCatalog()
	if len(catalog) != 29 {
		names := make([]string, len(catalog))
		for i, td := range catalog {
			names[i] = td.Name
		}
		t.Fatalf("expected 29 tools, got %d: %v", len(catalog), names)
	}
}

func TestBuildToolCatalog_AllToolsHaveRequiredFields(t *testing.T) {
	for _, td := range buildToolCatalog() {
		if td.Name == "" {
			t.Error("tool has empty name")
		}
		if td.Description == "" {
			t.Errorf("tool %q has empty description", td.Name)
		}
		if td.Method != "GET" && td.Method != "POST" {
			t.Errorf("tool %q has unexpected method %q", td.Name, td.Method)
		}
		if !strings.HasPrefix(td.Path, "/api/") {
			t.Errorf("tool %q path %q is outside /api/", td.Name, td.Path)
		}
	}
}

func TestBuildToolCatalog_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, td := range buildToolCatalog() {
		if seen[td.Name] {
			t.Errorf("duplicate tool name %q", td.Name)
		}
		seen[td.Name] = true
	}
}

func TestBuildToolCatalog_PathParamsMatchTemplates(t *testing.T) {
	placeholder := regexp.MustCompile(`\{(\w+)\}`)
	for _, td := range buildToolCatalog() {
		inPath := make(map[string]bool)
		for _, m := range placeholder.FindAllStringSubmatch(td.Path, -1) {
			inPath[m[1]] = true
		}
		for _, p := range td.Params {
			switch p.In {
			case "path":
				if !inPath[p.Name] {
					t.Errorf("tool %q: path param %q missing from %s", td.Name, p.Name, td.Path)
				}
				if !p.Required {
					t.Errorf("tool %q: path param %q should be required", td.Name, p.Name)
				}
				delete(inPath, p.Name)
			case "query", "body":
			default:
				t.Errorf("tool %q: param %q has unknown location %q", td.Name, p.Name, p.In)
			}
			if p.Type == "array" && p.Items == "" {
				t.Errorf("tool %q: array param %q has no item type", td.Name, p.Name)
			}
		}
		for name := range inPath {
			t.Errorf("tool %q: placeholder {%s} has no param", td.Name, name)
		}
	}
}

func TestBuildToolCatalog_KnownTools(t *testing.T) {
	want := []string{
		"get_version", "get_stock_price", "get_multiple_stocks", "search_stock",
		"get_company_profile", "get_income_statement", "get_balance_sheet",
		"get_cash_flow_statement", "get_financial_ratios", "get_key_metrics",
		"get_comprehensive_analysis", "calculate_wacc", "perform_dcf_analysis",
		"dcf_sensitivity_analysis", "research_note", "get_valuation_history",
		"get_valuation", "web_search", "web_search_news",
	}
	names := make(map[string]bool)
	for _, td := range buildToolCatalog() {
		names[td.Name] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("missing tool %q", name)
		}
	}
}

func TestMathTools_MapToEvaluableOperations(t *testing.T) {
	for _, td := range mathTools() {
		if td.Method != "POST" {
			t.Errorf("math tool %q should be POST", td.Name)
		}
		op := strings.TrimPrefix(td.Path, "/api/math/")
		if _, err := finmath.Evaluate(op, finmath.Request{A: 1, B: 1, Numbers: []float64{1}, OldValue: 1, NewValue: 2}); err != nil {
			t.Errorf("math tool %q: operation %q not evaluable: %v", td.Name, op, err)
		}
	}
}
