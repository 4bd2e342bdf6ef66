package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/report"
	"github.com/bobmcallan/vantage/internal/services/research"
)

// waccOptions reads risk_free_rate and equity_risk_premium.
func waccOptions(r *http.Request) (models.WACCOptions, error) {
	var opts models.WACCOptions
	var err error
	if opts.RiskFreeRate, err = queryFloat(r, "risk_free_rate"); err != nil {
		return opts, err
	}
	if opts.EquityRiskPremium, err = queryFloat(r, "equity_risk_premium"); err != nil {
		return opts, err
	}
	return opts, nil
}

// dcfOptions reads the DCF assumption overrides.
func dcfOptions(r *http.Request) (models.DCFOptions, error) {
	var opts models.DCFOptions
	var err error
	if opts.ProjectionYears, err = queryInt(r, "projection_years"); err != nil {
		return opts, err
	}
	if opts.FCFGrowthRate, err = queryFloat(r, "fcf_growth_rate"); err != nil {
		return opts, err
	}
	if opts.TerminalGrowthRate, err = queryFloat(r, "terminal_growth_rate"); err != nil {
		return opts, err
	}
	if opts.DiscountRate, err = queryFloat(r, "discount_rate"); err != nil {
		return opts, err
	}
	if opts.MarginOfSafety, err = queryFloat(r, "margin_of_safety"); err != nil {
		return opts, err
	}
	return opts, nil
}

// sensitivityOptions reads the grid ranges and projection overrides.
func sensitivityOptions(r *http.Request) (models.SensitivityOptions, error) {
	var opts models.SensitivityOptions
	var err error
	if opts.TerminalGrowthRates, err = queryFloatList(r, "terminal_growth_range"); err != nil {
		return opts, err
	}
	if opts.DiscountRates, err = queryFloatList(r, "discount_rate_range"); err != nil {
		return opts, err
	}
	if opts.ProjectionYears, err = queryInt(r, "projection_years"); err != nil {
		return opts, err
	}
	if opts.FCFGrowthRate, err = queryFloat(r, "fcf_growth_rate"); err != nil {
		return opts, err
	}
	return opts, nil
}

// chartURL returns an absolute link to the chart for a DCF result, or "" when
// the request carries no host to build one from.
func chartURL(r *http.Request, result *models.DCFResult) string {
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if result.ValuationID != "" {
		return fmt.Sprintf("%s://%s/api/valuations/%s/chart", scheme, r.Host, url.PathEscape(result.ValuationID))
	}
	q := r.URL.Query()
	q.Del("format")
	link := fmt.Sprintf("%s://%s/api/companies/%s/dcf/chart", scheme, r.Host, url.PathEscape(result.Symbol))
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}

// writePNG writes the projection chart for result.
func (s *Server) writePNG(w http.ResponseWriter, r *http.Request, result *models.DCFResult) {
	png, err := report.RenderDCFChart(result)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", result.Symbol).Msg("Failed to render DCF chart")
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), CodeInsufficientData)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleWACC handles GET /api/companies/{symbol}/wacc.
func (s *Server) handleWACC(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, err := waccOptions(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	result, err := s.app.ResearchService.CalculateWACC(r.Context(), symbol, opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, result, func() string { return report.FormatWACC(result) })
}

// handleDCF handles GET /api/companies/{symbol}/dcf. Each run is recorded in history.
func (s *Server) handleDCF(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, err := dcfOptions(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	result, err := s.app.ResearchService.PerformDCF(r.Context(), symbol, opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, result, func() string { return report.FormatDCF(result, chartURL(r, result)) })
}

// handleDCFChart handles GET /api/companies/{symbol}/dcf/chart. The run is not recorded.
func (s *Server) handleDCFChart(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, err := dcfOptions(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}
	opts.SkipHistory = true

	result, err := s.app.ResearchService.PerformDCF(r.Context(), symbol, opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writePNG(w, r, result)
}

// handleSensitivity handles GET /api/companies/{symbol}/sensitivity.
func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, err := sensitivityOptions(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	result, err := s.app.ResearchService.SensitivityAnalysis(r.Context(), symbol, opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, result, func() string { return report.FormatSensitivity(result) })
}

// handleResearchNote handles GET /api/companies/{symbol}/note.
func (s *Server) handleResearchNote(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	note, err := s.app.ResearchService.ResearchNote(r.Context(), symbol)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, note, func() string { return report.FormatResearchNote(note) })
}

// handleValuationHistory handles GET /api/companies/{symbol}/valuations?limit=.
func (s *Server) handleValuationHistory(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	records, err := s.app.ResearchService.ValuationHistory(r.Context(), symbol, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, map[string]interface{}{
		"symbol":     strings.ToUpper(symbol),
		"count":      len(records),
		"valuations": records,
	}, func() string { return report.FormatValuationHistory(strings.ToUpper(symbol), records) })
}

// handleValuationGet handles GET /api/valuations/{id}.
func (s *Server) handleValuationGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	record, err := s.app.ResearchService.GetValuation(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeResult(w, r, record, func() string { return report.FormatValuationRecord(record) })
}

// handleValuationChart handles GET /api/valuations/{id}/chart.
func (s *Server) handleValuationChart(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	record, err := s.app.ResearchService.GetValuation(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if record.Result == nil {
		s.writeServiceError(w, r, fmt.Errorf("valuation %s has no stored projections: %w", id, research.ErrNotFound))
		return
	}
	s.writePNG(w, r, record.Result)
}
