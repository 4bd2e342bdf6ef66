package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/vantage/internal/cache"
	"github.com/bobmcallan/vantage/internal/clients/fmp"
	"github.com/bobmcallan/vantage/internal/clients/gemini"
	"github.com/bobmcallan/vantage/internal/clients/websearch"
	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/services/research"
	"github.com/bobmcallan/vantage/internal/services/valuation"
	"github.com/bobmcallan/vantage/internal/services/web"
	"github.com/bobmcallan/vantage/internal/storage/surrealdb"
)

// App holds all initialized services, clients, and the MCP server.
// It is the shared core used by cmd/vantage-server and cmd/vantage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Cache           interfaces.ResponseCache
	Storage         *surrealdb.Manager
	FMPClient       interfaces.FMPClient
	GeminiClient    interfaces.GeminiClient
	WebSearchClient interfaces.WebSearchClient
	ResearchService interfaces.ResearchService
	WebService      interfaces.WebService
	MCPServer       *server.MCPServer
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, VANTAGE_CONFIG,
// vantage.toml beside the binary, then config/vantage.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("VANTAGE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "vantage.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/vantage.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp loads configuration and initializes clients, cache, storage, services
// and the MCP server. configPath may be empty, in which case ResolveConfigPath applies.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(getBinaryDir(), config.Logging.FilePath)
	}

	return NewAppWithConfig(context.Background(), config, common.NewLoggerFromConfig(config.Logging))
}

// NewAppWithConfig builds the App from an already loaded config.
func NewAppWithConfig(ctx context.Context, config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	if missing := config.ValidateRequired(); len(missing) > 0 {
		logger.Warn().Str("missing", strings.Join(missing, ", ")).Msg("Required settings not configured - FMP requests will fail")
	}

	responseCache, err := cache.New(config.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	fmpOpts := []fmp.ClientOption{
		fmp.WithBaseURL(config.Clients.FMP.BaseURL),
		fmp.WithLogger(logger),
		fmp.WithRateLimit(config.Clients.FMP.RateLimit),
		fmp.WithTimeout(config.Clients.FMP.GetTimeout()),
	}
	if responseCache != nil {
		fmpOpts = append(fmpOpts, fmp.WithCache(responseCache, config.Cache.GetTTL()))
	}
	fmpClient := fmp.NewClient(config.Clients.FMP.APIKey, fmpOpts...)

	// Interfaces are only assigned from non-nil pointers so nil checks downstream hold
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		gc, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - research notes unavailable")
		} else {
			geminiClient = gc
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - research notes unavailable")
	}

	searchClient := websearch.NewClient(
		websearch.WithBaseURL(config.Clients.WebSearch.BaseURL),
		websearch.WithTimeout(config.Clients.WebSearch.GetTimeout()),
		websearch.WithLogger(logger),
	)

	var storageManager *surrealdb.Manager
	var valuationStore interfaces.ValuationStore
	if config.Storage.Enabled() {
		storageManager, err = surrealdb.NewManager(ctx, config.Storage, logger)
		if err != nil {
			if responseCache != nil {
				responseCache.Close()
			}
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		valuationStore = storageManager.ValuationStore()
	} else {
		logger.Info().Msg("Storage address not configured - valuation history disabled")
	}

	researchService := research.NewService(fmpClient, valuationStore, geminiClient,
		valuation.AssumptionsFromConfig(config.Valuation), logger)
	webService := web.NewService(searchClient, logger)

	mcpServer := server.NewMCPServer(
		"vantage",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:          config,
		Logger:          logger,
		Cache:           responseCache,
		Storage:         storageManager,
		FMPClient:       fmpClient,
		GeminiClient:    geminiClient,
		WebSearchClient: searchClient,
		ResearchService: researchService,
		WebService:      webService,
		MCPServer:       mcpServer,
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App. Safe to call more than once.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
		a.Storage = nil
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close cache")
		}
		a.Cache = nil
	}
}
