package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/vantage/internal/common"
)

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/mcp/tools", s.handleToolCatalog)
	mux.HandleFunc("/api/mcp/manifest", s.handleManifest)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Market data
	mux.HandleFunc("/api/quote/", s.handleQuote)
	mux.HandleFunc("/api/quotes", s.handleQuotes)
	mux.HandleFunc("/api/search", s.handleSymbolSearch)

	// Companies: statements, analysis and valuation
	mux.HandleFunc("/api/companies/", s.routeCompanies)

	// Valuation history
	mux.HandleFunc("/api/valuations/", s.routeValuations)

	// Tools
	mux.HandleFunc("/api/math/", s.handleMath)
	mux.HandleFunc("/api/web/search", s.handleWebSearch)
	mux.HandleFunc("/api/web/news", s.handleWebNews)
}

// routeCompanies dispatches /api/companies/{symbol}/{resource} to the appropriate handler.
func (s *Server) routeCompanies(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/companies/"), "/")
	symbol, resource, _ := strings.Cut(path, "/")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	switch resource {
	case "profile":
		s.handleProfile(w, r, symbol)
	case "income-statements":
		s.handleIncomeStatements(w, r, symbol)
	case "balance-sheets":
		s.handleBalanceSheets(w, r, symbol)
	case "cash-flows":
		s.handleCashFlows(w, r, symbol)
	case "ratios":
		s.handleRatios(w, r, symbol)
	case "key-metrics":
		s.handleKeyMetrics(w, r, symbol)
	case "analysis":
		s.handleAnalysis(w, r, symbol)
	case "wacc":
		s.handleWACC(w, r, symbol)
	case "dcf":
		s.handleDCF(w, r, symbol)
	case "dcf/chart":
		s.handleDCFChart(w, r, symbol)
	case "sensitivity":
		s.handleSensitivity(w, r, symbol)
	case "note":
		s.handleResearchNote(w, r, symbol)
	case "valuations":
		s.handleValuationHistory(w, r, symbol)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeValuations dispatches /api/valuations/{id} and /api/valuations/{id}/chart.
func (s *Server) routeValuations(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/valuations/"), "/")
	id, resource, _ := strings.Cut(path, "/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "valuation id is required in path")
		return
	}

	switch resource {
	case "":
		s.handleValuationGet(w, r, id)
	case "chart":
		s.handleValuationChart(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleToolCatalog handles GET /api/mcp/tools.
func (s *Server) handleToolCatalog(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, buildToolCatalog())
}

// writeResult writes data as JSON, or the markdown rendering when format=markdown.
func writeResult(w http.ResponseWriter, r *http.Request, data interface{}, markdown func() string) {
	if wantsMarkdown(r) {
		WriteMarkdown(w, http.StatusOK, markdown())
		return
	}
	WriteJSON(w, http.StatusOK, data)
}
