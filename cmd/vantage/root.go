package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/vantage/internal/app"
	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/services/research"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// cli holds the global flags and the lazily built application.
type cli struct {
	configPath string
	jsonOut    bool
	verbose    bool

	stdout io.Writer
	app    *app.App
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout}

	root := &cobra.Command{
		Use:           "vantage",
		Short:         "Equity research and valuation from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to vantage.toml (default: $VANTAGE_CONFIG)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print JSON instead of rendered markdown")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.quoteCmd(),
		c.searchCmd(),
		c.profileCmd(),
		c.statementsCmd(),
		c.analysisCmd(),
		c.waccCmd(),
		c.dcfCmd(),
		c.sensitivityCmd(),
		c.noteCmd(),
		c.historyCmd(),
		c.valuationCmd(),
		c.mathCmd(),
		c.webCmd(),
		c.manifestCmd(),
		c.tokenCmd(),
		c.versionCmd(),
	)
	return root
}

// loadConfig reads vantage.toml for CLI use: stderr logging only, warn unless verbose.
func (c *cli) loadConfig() (*common.Config, error) {
	cfg, err := common.LoadConfig(app.ResolveConfigPath(c.configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Logging.FilePath = ""
	cfg.Logging.Level = "warn"
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// services builds the App on first use.
func (c *cli) services(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.NewAppWithConfig(ctx, cfg, common.NewLoggerFromConfig(cfg.Logging))
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
}

// render prints data as indented JSON with --json, otherwise the markdown rendered for the terminal.
func (c *cli) render(data interface{}, markdown func() string) error {
	if c.jsonOut {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return c.renderMarkdown(markdown())
}

func (c *cli) renderMarkdown(md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = fmt.Fprint(c.stdout, out)
	return err
}

// printError writes err in the error style, with a hint for configuration errors.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))

	var partial *research.PartialDataError
	switch {
	case errors.Is(err, research.ErrNotConfigured):
		fmt.Fprintln(w, hintStyle.Render("Configure storage.address for history or clients.gemini.api_key for research notes in vantage.toml."))
	case errors.As(err, &partial):
		for _, f := range partial.Failures {
			fmt.Fprintln(w, hintStyle.Render("  - "+f))
		}
	}
}
