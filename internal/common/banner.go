package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

var bannerArt = []string{
	` 888     888     d8888 888b    888 88888888888     d8888  .d8888b.  8888888888`,
	` 888     888    d88888 8888b   888     888        d88888 d88P  Y88b 888`,
	` Y88b   d88P   d88P888 88888b  888     888       d88P888 888    888 888`,
	`  Y88b d88P   d88P 888 888Y88b 888     888      d88P 888 888        8888888`,
	`   Y88o88P   d88P  888 888 Y88b888     888     d88P  888 888  88888 888`,
	`    Y888P   d88P   888 888  Y88888     888    d88P   888 888    888 888`,
	`     Y8P   d8888888888 888   Y8888     888   d8888888888 Y88b  d88P 888`,
	`      Y   d88P     888 888    Y888     888  d88P     888  "Y8888P88 8888888888`,
}

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	writeBanner(os.Stderr, config)

	logger.Info().
		Str("version", GetVersion()).
		Str("build", GetBuild()).
		Str("commit", GetGitCommit()).
		Str("environment", config.Environment).
		Str("service_url", serviceURL(config)).
		Str("fmp_base_url", config.Clients.FMP.BaseURL).
		Str("cache", config.Cache.Backend).
		Bool("history", config.Storage.Enabled()).
		Msg("Application started")
}

func serviceURL(config *Config) string {
	return fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
}

func writeBanner(w io.Writer, config *Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("═", 82) + banner.ColorReset

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range bannerArt {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Equity Research & Intrinsic Valuation%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n%s\n\n", hr)

	history := "disabled"
	if config.Storage.Enabled() {
		history = config.Storage.Address
	}
	gemini := "disabled"
	if config.Clients.Gemini.APIKey != "" {
		gemini = config.Clients.Gemini.Model
	}

	rows := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Commit", GetGitCommit()},
		{"Environment", config.Environment},
		{"Service URL", serviceURL(config)},
		{"FMP", config.Clients.FMP.BaseURL},
		{"Cache", config.Cache.Backend},
		{"History", history},
		{"Research notes", gemini},
	}
	for _, kv := range rows {
		fmt.Fprintf(w, "%s  %-16s %s%s\n", textColor, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)
}

// PrintShutdownBanner displays the application shutdown banner to stderr.
func PrintShutdownBanner(logger *Logger) {
	hr := banner.ColorCyan + strings.Repeat("═", 42) + banner.ColorReset

	fmt.Fprintf(os.Stderr, "\n%s\n", hr)
	fmt.Fprintf(os.Stderr, "%s  VANTAGE - SHUTTING DOWN%s\n", banner.ColorBold+banner.ColorWhite, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s\n\n", hr)

	logger.Info().Msg("Application shutting down")
}
