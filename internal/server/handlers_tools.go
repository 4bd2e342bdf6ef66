package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/finmath"
	"github.com/bobmcallan/vantage/internal/services/report"
)

// handleMath handles POST /api/math/{operation}. GET /api/math/ lists the operations.
func (s *Server) handleMath(w http.ResponseWriter, r *http.Request) {
	op := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/math/"), "/")
	if op == "" {
		if !RequireMethod(w, r, http.MethodGet) {
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"operations": finmath.Operations})
		return
	}

	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req finmath.Request
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := finmath.Evaluate(op, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, result, func() string { return report.FormatMathResult(result) })
}

type webSearchFunc func(ctx context.Context, query string, maxResults int) (*models.WebSearchResponse, error)

// serveWebSearch runs search with the query and max_results parameters.
func (s *Server) serveWebSearch(w http.ResponseWriter, r *http.Request, search webSearchFunc) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	maxResults, err := queryInt(r, "max_results")
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	resp, err := search(r.Context(), r.URL.Query().Get("query"), maxResults)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, resp, func() string { return report.FormatWebResults(resp) })
}

// handleWebSearch handles GET /api/web/search?query=&max_results=.
func (s *Server) handleWebSearch(w http.ResponseWriter, r *http.Request) {
	s.serveWebSearch(w, r, s.app.WebService.Search)
}

// handleWebNews handles GET /api/web/news?query=&max_results=.
func (s *Server) handleWebNews(w http.ResponseWriter, r *http.Request) {
	s.serveWebSearch(w, r, s.app.WebService.SearchNews)
}
