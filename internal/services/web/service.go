// Package web runs web and news searches for research context
package web

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/vantage/internal/clients/websearch"
	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// Search kinds
const (
	KindWeb  = "web"
	KindNews = "news"
)

// Service implements WebService
type Service struct {
	client interfaces.WebSearchClient
	logger *common.Logger
}

var _ interfaces.WebService = (*Service)(nil)

// NewService creates a web search service
func NewService(client interfaces.WebSearchClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{client: client, logger: logger}
}

// Search runs a general web search
func (s *Service) Search(ctx context.Context, query string, maxResults int) (*models.WebSearchResponse, error) {
	return s.run(ctx, KindWeb, query, maxResults, s.client.Search)
}

// SearchNews searches news from the past week
func (s *Service) SearchNews(ctx context.Context, query string, maxResults int) (*models.WebSearchResponse, error) {
	return s.run(ctx, KindNews, query, maxResults, s.client.SearchNews)
}

type searchFunc func(ctx context.Context, query string, maxResults int) ([]models.WebResult, error)

func (s *Service) run(ctx context.Context, kind, query string, maxResults int, fn searchFunc) (*models.WebSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &valuation.InputError{Field: "query", Message: "is required"}
	}

	results, err := fn(ctx, query, websearch.ClampMaxResults(maxResults))
	if err != nil {
		return nil, fmt.Errorf("%s search failed: %w", kind, err)
	}
	if results == nil {
		results = []models.WebResult{}
	}

	s.logger.Debug().Str("kind", kind).Str("query", query).Int("results", len(results)).Msg("Web search complete")

	return &models.WebSearchResponse{Query: query, Kind: kind, Results: results}, nil
}
