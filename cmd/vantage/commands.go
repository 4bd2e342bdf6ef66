package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/server"
	"github.com/bobmcallan/vantage/internal/services/finmath"
	"github.com/bobmcallan/vantage/internal/services/report"
)

const commandTimeout = 2 * time.Minute

// optFloat returns the flag value when it was set on the command line.
func optFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// withServices runs fn with a timeout context and the application services.
func (c *cli) withServices(fn func(ctx context.Context, rs interfaces.ResearchService) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	a, err := c.services(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, a.ResearchService)
}

func (c *cli) quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "quote <symbol> [symbol...]",
		Short:   "Show current quotes",
		Example: "  vantage quote AAPL\n  vantage quote AAPL MSFT GOOGL",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				if len(args) == 1 {
					q, err := rs.GetQuote(ctx, args[0])
					if err != nil {
						return err
					}
					return c.render(q, func() string { return report.FormatQuote(q) })
				}
				results := rs.GetQuotes(ctx, args)
				return c.render(results, func() string { return report.FormatQuotes(results) })
			})
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find ticker symbols by company name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				matches, err := rs.SearchSymbols(ctx, query, limit)
				if err != nil {
					return err
				}
				return c.render(matches, func() string { return report.FormatSymbolMatches(query, matches) })
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum matches (default 10)")
	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <symbol>",
		Short: "Show the company profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				p, err := rs.GetProfile(ctx, args[0])
				if err != nil {
					return err
				}
				return c.render(p, func() string { return report.FormatProfile(p) })
			})
		},
	}
}

// statementKinds lists the accepted statement arguments.
var statementKinds = []string{"income", "balance", "cashflow", "ratios", "metrics"}

func (c *cli) statementsCmd() *cobra.Command {
	var q interfaces.StatementQuery
	cmd := &cobra.Command{
		Use:       "statements <income|balance|cashflow|ratios|metrics> <symbol>",
		Short:     "Show financial statements, ratios or key metrics",
		Example:   "  vantage statements income AAPL --period quarter --limit 8",
		Args:      cobra.ExactArgs(2),
		ValidArgs: statementKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, symbol := strings.ToLower(args[0]), args[1]
			if !isStatementKind(kind) {
				return fmt.Errorf("unknown statement %q: expected one of %s", kind, strings.Join(statementKinds, ", "))
			}
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				switch kind {
				case "income":
					items, err := rs.GetIncomeStatements(ctx, symbol, q)
					if err != nil {
						return err
					}
					return c.render(items, func() string { return report.FormatIncomeStatements(symbol, items) })
				case "balance":
					items, err := rs.GetBalanceSheets(ctx, symbol, q)
					if err != nil {
						return err
					}
					return c.render(items, func() string { return report.FormatBalanceSheets(symbol, items) })
				case "cashflow":
					items, err := rs.GetCashFlowStatements(ctx, symbol, q)
					if err != nil {
						return err
					}
					return c.render(items, func() string { return report.FormatCashFlows(symbol, items) })
				case "ratios":
					items, err := rs.GetRatios(ctx, symbol, q)
					if err != nil {
						return err
					}
					return c.render(items, func() string { return report.FormatRatios(symbol, items) })
				default:
					items, err := rs.GetKeyMetrics(ctx, symbol, q)
					if err != nil {
						return err
					}
					return c.render(items, func() string { return report.FormatKeyMetrics(symbol, items) })
				}
			})
		},
	}
	cmd.Flags().StringVar(&q.Period, "period", "annual", "annual or quarter")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "number of periods (default 5)")
	return cmd
}

func isStatementKind(kind string) bool {
	for _, k := range statementKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (c *cli) analysisCmd() *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "analysis <symbol>",
		Short: "Show a multi-year fundamental analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				a, err := rs.ComprehensiveAnalysis(ctx, args[0], years)
				if err != nil {
					return err
				}
				return c.render(a, func() string { return report.FormatAnalysis(a) })
			})
		},
	}
	cmd.Flags().IntVar(&years, "years", 0, "years of history (default 3)")
	return cmd
}

func (c *cli) waccCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wacc <symbol>",
		Short: "Calculate the weighted average cost of capital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := models.WACCOptions{
				RiskFreeRate:      optFloat(cmd, "risk-free-rate"),
				EquityRiskPremium: optFloat(cmd, "equity-risk-premium"),
			}
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				r, err := rs.CalculateWACC(ctx, args[0], opts)
				if err != nil {
					return err
				}
				return c.render(r, func() string { return report.FormatWACC(r) })
			})
		},
	}
	cmd.Flags().Float64("risk-free-rate", 0, "risk-free rate in percent (default 4.5)")
	cmd.Flags().Float64("equity-risk-premium", 0, "equity risk premium in percent (default 5.5)")
	return cmd
}

func (c *cli) dcfCmd() *cobra.Command {
	var projectionYears int
	var chartPath string
	var noHistory bool
	cmd := &cobra.Command{
		Use:     "dcf <symbol>",
		Short:   "Run a discounted cash flow valuation",
		Example: "  vantage dcf AAPL --terminal-growth 3 --chart aapl.png",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := models.DCFOptions{
				ProjectionYears:    projectionYears,
				FCFGrowthRate:      optFloat(cmd, "fcf-growth"),
				TerminalGrowthRate: optFloat(cmd, "terminal-growth"),
				DiscountRate:       optFloat(cmd, "discount-rate"),
				MarginOfSafety:     optFloat(cmd, "margin-of-safety"),
				SkipHistory:        noHistory,
			}
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				r, err := rs.PerformDCF(ctx, args[0], opts)
				if err != nil {
					return err
				}
				if chartPath != "" {
					png, err := report.RenderDCFChart(r)
					if err != nil {
						return err
					}
					if err := os.WriteFile(chartPath, png, 0644); err != nil {
						return fmt.Errorf("failed to write chart: %w", err)
					}
				}
				return c.render(r, func() string { return report.FormatDCF(r, chartPath) })
			})
		},
	}
	cmd.Flags().IntVar(&projectionYears, "projection-years", 0, "years to project (default 5, range 1-10)")
	cmd.Flags().Float64("fcf-growth", 0, "FCF growth rate in percent (default: historical CAGR)")
	cmd.Flags().Float64("terminal-growth", 0, "terminal growth rate in percent (default 2.5)")
	cmd.Flags().Float64("discount-rate", 0, "discount rate in percent (default: WACC)")
	cmd.Flags().Float64("margin-of-safety", 0, "margin of safety in percent (default 20)")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the projection chart PNG to this path")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the run in valuation history")
	return cmd
}

func (c *cli) sensitivityCmd() *cobra.Command {
	var opts models.SensitivityOptions
	cmd := &cobra.Command{
		Use:   "sensitivity <symbol>",
		Short: "Show intrinsic value across discount and terminal growth rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.FCFGrowthRate = optFloat(cmd, "fcf-growth")
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				r, err := rs.SensitivityAnalysis(ctx, args[0], opts)
				if err != nil {
					return err
				}
				return c.render(r, func() string { return report.FormatSensitivity(r) })
			})
		},
	}
	cmd.Flags().Float64SliceVar(&opts.TerminalGrowthRates, "terminal-growth-range", nil, "terminal growth rates in percent (default 1.5,2,2.5,3,3.5)")
	cmd.Flags().Float64SliceVar(&opts.DiscountRates, "discount-rate-range", nil, "discount rates in percent (default 8,9,10,11,12)")
	cmd.Flags().IntVar(&opts.ProjectionYears, "projection-years", 0, "years to project (default 5)")
	cmd.Flags().Float64("fcf-growth", 0, "FCF growth rate in percent (default: historical CAGR)")
	return cmd
}

func (c *cli) noteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <symbol>",
		Short: "Write a narrative research note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				n, err := rs.ResearchNote(ctx, args[0])
				if err != nil {
					return err
				}
				return c.render(n, func() string { return report.FormatResearchNote(n) })
			})
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var limit int
	var clearHistory bool
	cmd := &cobra.Command{
		Use:     "history <symbol>",
		Short:   "List recorded valuations for a symbol",
		Example: "  vantage history AAPL --limit 5\n  vantage history AAPL --clear",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				symbol := strings.ToUpper(args[0])
				if clearHistory {
					n, err := rs.ClearValuationHistory(ctx, args[0])
					if err != nil {
						return err
					}
					result := map[string]interface{}{"symbol": symbol, "deleted": n}
					return c.render(result, func() string {
						return fmt.Sprintf("Deleted %d valuation(s) for %s.\n", n, symbol)
					})
				}
				records, err := rs.ValuationHistory(ctx, args[0], limit)
				if err != nil {
					return err
				}
				return c.render(records, func() string { return report.FormatValuationHistory(symbol, records) })
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records (default 20)")
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "delete the recorded valuations instead of listing them")
	return cmd
}

func (c *cli) valuationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valuation <id>",
		Short: "Show a recorded valuation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(func(ctx context.Context, rs interfaces.ResearchService) error {
				rec, err := rs.GetValuation(ctx, args[0])
				if err != nil {
					return err
				}
				return c.render(rec, func() string { return report.FormatValuationRecord(rec) })
			})
		},
	}
}

func (c *cli) mathCmd() *cobra.Command {
	var req finmath.Request
	cmd := &cobra.Command{
		Use:       "math <operation>",
		Short:     "Evaluate an arithmetic helper",
		Example:   "  vantage math percentage_change --old 120 --new 150\n  vantage math average --numbers 2,4,9",
		Args:      cobra.ExactArgs(1),
		ValidArgs: finmath.Operations,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := finmath.Evaluate(args[0], req)
			if err != nil {
				return err
			}
			return c.render(r, func() string { return report.FormatMathResult(r) })
		},
	}
	f := cmd.Flags()
	f.Float64Var(&req.A, "a", 0, "first operand")
	f.Float64Var(&req.B, "b", 0, "second operand")
	f.Float64Var(&req.Value, "value", 0, "base value for percentage")
	f.Float64Var(&req.Percent, "percent", 0, "percent for percentage")
	f.Float64Var(&req.OldValue, "old", 0, "old value for percentage_change")
	f.Float64Var(&req.NewValue, "new", 0, "new value for percentage_change")
	f.Float64SliceVar(&req.Numbers, "numbers", nil, "numbers for average and sum")
	f.Float64Var(&req.Principal, "principal", 0, "principal for compound_growth")
	f.Float64Var(&req.Rate, "rate", 0, "rate in percent for compound_growth")
	f.IntVar(&req.Periods, "periods", 0, "periods for compound_growth")
	return cmd
}

func (c *cli) webCmd() *cobra.Command {
	var news bool
	var maxResults int
	cmd := &cobra.Command{
		Use:   "web <query>",
		Short: "Search the web or recent news",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			a, err := c.services(ctx)
			if err != nil {
				return err
			}
			search := a.WebService.Search
			if news {
				search = a.WebService.SearchNews
			}
			resp, err := search(ctx, strings.Join(args, " "), maxResults)
			if err != nil {
				return err
			}
			return c.render(resp, func() string { return report.FormatWebResults(resp) })
		},
	}
	cmd.Flags().BoolVar(&news, "news", false, "search news from the past week")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum results (default 5)")
	return cmd
}

func (c *cli) manifestCmd() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the tool manifest as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := server.BuildManifest(serverURL)
			if err != nil {
				return err
			}
			_, err = c.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&serverURL, "server-url", "", "server URL to embed in the manifest")
	return cmd
}

func (c *cli) tokenCmd() *cobra.Command {
	var expiry string
	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Sign a bearer token with auth.jwt_secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if expiry != "" {
				if _, err := time.ParseDuration(expiry); err != nil {
					return fmt.Errorf("invalid expiry %q: %w", expiry, err)
				}
				cfg.Auth.TokenExpiry = expiry
			}
			token, err := server.SignToken(args[0], &cfg.Auth)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.stdout, token)
			return err
		},
	}
	cmd.Flags().StringVar(&expiry, "expiry", "", "token lifetime, e.g. 1h or 720h (default auth.token_expiry)")
	return cmd
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common.LoadVersionFromFile()
			info := common.GetVersionInfo()
			if c.jsonOut {
				return c.render(info, nil)
			}
			_, err := fmt.Fprintln(c.stdout, "vantage "+common.GetFullVersion())
			return err
		},
	}
}
