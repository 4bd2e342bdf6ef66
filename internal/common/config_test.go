package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 4242 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 4242)
	}
}

func TestConfig_DefaultValuationAssumptions(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Valuation.RiskFreeRate != 4.5 {
		t.Errorf("RiskFreeRate = %v, want 4.5", cfg.Valuation.RiskFreeRate)
	}
	if cfg.Valuation.EquityRiskPremium != 5.5 {
		t.Errorf("EquityRiskPremium = %v, want 5.5", cfg.Valuation.EquityRiskPremium)
	}
	if cfg.Valuation.TerminalGrowthRate != 2.5 {
		t.Errorf("TerminalGrowthRate = %v, want 2.5", cfg.Valuation.TerminalGrowthRate)
	}
	if cfg.Valuation.MarginOfSafety != 20 {
		t.Errorf("MarginOfSafety = %v, want 20", cfg.Valuation.MarginOfSafety)
	}
	if cfg.Valuation.ProjectionYears != 5 {
		t.Errorf("ProjectionYears = %d, want 5", cfg.Valuation.ProjectionYears)
	}
	if cfg.Valuation.FallbackDiscountRate != 10 {
		t.Errorf("FallbackDiscountRate = %v, want 10", cfg.Valuation.FallbackDiscountRate)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("VANTAGE_PORT", "9090")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_FMPKeyBareEnvOverride(t *testing.T) {
	t.Setenv("FMP_API_KEY", "from-env")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides: %v", err)
	}

	if cfg.Clients.FMP.APIKey != "from-env" {
		t.Errorf("FMP.APIKey = %q, want %q", cfg.Clients.FMP.APIKey, "from-env")
	}
}

func TestConfig_PrefixedEnvWinsOverBare(t *testing.T) {
	t.Setenv("FMP_API_KEY", "bare")
	t.Setenv("VANTAGE_FMP_API_KEY", "prefixed")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides: %v", err)
	}

	if cfg.Clients.FMP.APIKey != "prefixed" {
		t.Errorf("FMP.APIKey = %q, want %q", cfg.Clients.FMP.APIKey, "prefixed")
	}
}

func TestConfig_GoogleAPIKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides: %v", err)
	}

	if cfg.Clients.Gemini.APIKey != "google-key" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Clients.Gemini.APIKey, "google-key")
	}
}

func TestConfig_InvalidPortEnvFails(t *testing.T) {
	t.Setenv("VANTAGE_PORT", "not-a-number")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err == nil {
		t.Error("expected error for non-numeric VANTAGE_PORT")
	}
}

func TestLoadConfig_FileMergeOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")

	if err := os.WriteFile(base, []byte(`
environment = "staging"

[server]
port = 7000

[valuation]
risk_free_rate = 4.0
`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte(`
[server]
port = 7001

[cache]
backend = "REDIS"
redis_url = "redis://localhost:6379/0"
`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(base, local, filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001 (later file wins)", cfg.Server.Port)
	}
	if cfg.Valuation.RiskFreeRate != 4.0 {
		t.Errorf("RiskFreeRate = %v, want 4.0", cfg.Valuation.RiskFreeRate)
	}
	if cfg.Valuation.EquityRiskPremium != 5.5 {
		t.Errorf("EquityRiskPremium = %v, want default 5.5", cfg.Valuation.EquityRiskPremium)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want redis (lower-cased)", cfg.Cache.Backend)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error for invalid TOML")
	}
}

func TestNormalize_UnknownCacheBackend(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Cache.Backend = "memcached"
	cfg.Valuation.ProjectionYears = 0
	normalize(cfg)

	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Valuation.ProjectionYears != 5 {
		t.Errorf("ProjectionYears = %d, want 5", cfg.Valuation.ProjectionYears)
	}
}

func TestConfig_ValidateRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	missing := cfg.ValidateRequired()
	if len(missing) != 1 || missing[0] != "clients.fmp.api_key" {
		t.Errorf("expected only clients.fmp.api_key missing, got %v", missing)
	}

	cfg.Clients.FMP.APIKey = "key"
	cfg.Cache.Backend = "redis"
	missing = cfg.ValidateRequired()
	if len(missing) != 1 || missing[0] != "cache.redis_url" {
		t.Errorf("expected only cache.redis_url missing, got %v", missing)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	for env, want := range map[string]bool{"production": true, " PROD ": true, "development": false, "": false} {
		cfg := &Config{Environment: env}
		if got := cfg.IsProduction(); got != want {
			t.Errorf("IsProduction(%q) = %v, want %v", env, got, want)
		}
	}
}

func TestConfig_Durations(t *testing.T) {
	fmp := FMPConfig{Timeout: "bogus"}
	if fmp.GetTimeout() != 15*time.Second {
		t.Errorf("FMP timeout fallback = %v, want 15s", fmp.GetTimeout())
	}
	fmp.Timeout = "3s"
	if fmp.GetTimeout() != 3*time.Second {
		t.Errorf("FMP timeout = %v, want 3s", fmp.GetTimeout())
	}

	cache := CacheConfig{TTL: ""}
	if cache.GetTTL() != FreshnessStatements {
		t.Errorf("cache TTL fallback = %v, want %v", cache.GetTTL(), FreshnessStatements)
	}

	auth := AuthConfig{TokenExpiry: "2h"}
	if auth.GetTokenExpiry() != 2*time.Hour {
		t.Errorf("token expiry = %v, want 2h", auth.GetTokenExpiry())
	}
}

func TestStorageConfig_Enabled(t *testing.T) {
	if (&StorageConfig{}).Enabled() {
		t.Error("empty address should disable storage")
	}
	if !(&StorageConfig{Address: "ws://localhost:8000/rpc"}).Enabled() {
		t.Error("address should enable storage")
	}
}
