package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/vantage/internal/services/report"
	"github.com/bobmcallan/vantage/internal/services/research"
)

// handleQuote handles GET /api/quote/{symbol}.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	symbol := PathParam(r, "/api/quote/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	quote, err := s.app.ResearchService.GetQuote(r.Context(), symbol)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, quote, func() string { return report.FormatQuote(quote) })
}

// handleQuotes handles GET /api/quotes?symbols=AAPL,MSFT.
func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	symbols := research.ParseSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		WriteErrorWithCode(w, http.StatusBadRequest, "symbols query parameter is required", CodeInvalidInput)
		return
	}

	results := s.app.ResearchService.GetQuotes(r.Context(), symbols)
	writeResult(w, r, map[string]interface{}{
		"count":  len(results),
		"quotes": results,
	}, func() string { return report.FormatQuotes(results) })
}

// handleSymbolSearch handles GET /api/search?query=&limit=.
func (s *Server) handleSymbolSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	limit, err := queryInt(r, "limit")
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	matches, err := s.app.ResearchService.SearchSymbols(r.Context(), query, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, map[string]interface{}{
		"query":   query,
		"count":   len(matches),
		"results": matches,
	}, func() string { return report.FormatSymbolMatches(query, matches) })
}
