package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/bobmcallan/vantage/internal/clients/fmp"
	"github.com/bobmcallan/vantage/internal/services/finmath"
	"github.com/bobmcallan/vantage/internal/services/research"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidInput     = "invalid_input"
	CodeNotFound         = "not_found"
	CodeInsufficientData = "insufficient_data"
	CodeNotConfigured    = "not_configured"
	CodePartialData      = "partial_data"
	CodeUpstream         = "upstream_error"
	CodeTimeout          = "timeout"
	CodeInternal         = "internal_error"
)

// classifyError maps a service error to an HTTP status and error code.
func classifyError(err error) (int, string) {
	var inputErr *valuation.InputError
	var partialErr *research.PartialDataError
	var apiErr *fmp.APIError

	switch {
	case errors.As(err, &inputErr),
		errors.Is(err, research.ErrInvalidSymbol),
		errors.Is(err, finmath.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, research.ErrNotFound), errors.Is(err, fmp.ErrNoData):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, research.ErrInsufficientData):
		return http.StatusUnprocessableEntity, CodeInsufficientData
	case errors.Is(err, research.ErrNotConfigured):
		return http.StatusServiceUnavailable, CodeNotConfigured
	case errors.As(err, &partialErr):
		return http.StatusBadGateway, CodePartialData
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, CodeUpstream
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// writeServiceError writes err with the status its kind maps to.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)

	event := s.logger.Debug()
	if status >= 500 {
		event = s.logger.Warn()
	}
	event.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("Request failed")

	resp := ErrorResponse{Error: err.Error(), Code: code}
	var partialErr *research.PartialDataError
	if errors.As(err, &partialErr) {
		resp.Failures = partialErr.Failures
	}
	WriteJSON(w, status, resp)
}
