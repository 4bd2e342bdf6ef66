package server

import (
	"context"
	"net/http"

	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/services/report"
)

// statementQuery reads the period and limit query parameters.
func statementQuery(r *http.Request) (interfaces.StatementQuery, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return interfaces.StatementQuery{}, err
	}
	return interfaces.StatementQuery{
		Period: r.URL.Query().Get("period"),
		Limit:  limit,
	}, nil
}

// handleProfile handles GET /api/companies/{symbol}/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	profile, err := s.app.ResearchService.GetProfile(r.Context(), symbol)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, profile, func() string { return report.FormatProfile(profile) })
}

// serveStatements fetches periods with the request's statement query and
// writes them under key, or as a markdown table.
func serveStatements[T any](s *Server, w http.ResponseWriter, r *http.Request, symbol, key string,
	fetch func(context.Context, string, interfaces.StatementQuery) ([]T, error),
	format func(string, []T) string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	q, err := statementQuery(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}
	items, err := fetch(r.Context(), symbol, q)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, map[string]interface{}{
		"symbol": symbol,
		"count":  len(items),
		key:      items,
	}, func() string { return format(symbol, items) })
}

// handleIncomeStatements handles GET /api/companies/{symbol}/income-statements.
func (s *Server) handleIncomeStatements(w http.ResponseWriter, r *http.Request, symbol string) {
	serveStatements(s, w, r, symbol, "income_statements", s.app.ResearchService.GetIncomeStatements, report.FormatIncomeStatements)
}

// handleBalanceSheets handles GET /api/companies/{symbol}/balance-sheets.
func (s *Server) handleBalanceSheets(w http.ResponseWriter, r *http.Request, symbol string) {
	serveStatements(s, w, r, symbol, "balance_sheets", s.app.ResearchService.GetBalanceSheets, report.FormatBalanceSheets)
}

// handleCashFlows handles GET /api/companies/{symbol}/cash-flows.
func (s *Server) handleCashFlows(w http.ResponseWriter, r *http.Request, symbol string) {
	serveStatements(s, w, r, symbol, "cash_flow_statements", s.app.ResearchService.GetCashFlowStatements, report.FormatCashFlows)
}

// handleRatios handles GET /api/companies/{symbol}/ratios.
func (s *Server) handleRatios(w http.ResponseWriter, r *http.Request, symbol string) {
	serveStatements(s, w, r, symbol, "ratios", s.app.ResearchService.GetRatios, report.FormatRatios)
}

// handleKeyMetrics handles GET /api/companies/{symbol}/key-metrics.
func (s *Server) handleKeyMetrics(w http.ResponseWriter, r *http.Request, symbol string) {
	serveStatements(s, w, r, symbol, "key_metrics", s.app.ResearchService.GetKeyMetrics, report.FormatKeyMetrics)
}

// handleAnalysis handles GET /api/companies/{symbol}/analysis?years=.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	years, err := queryInt(r, "years")
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	analysis, err := s.app.ResearchService.ComprehensiveAnalysis(r.Context(), symbol, years)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, analysis, func() string { return report.FormatAnalysis(analysis) })
}
