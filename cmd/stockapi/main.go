// stockapi — equity market data aggregation service.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigerding/stockapi/api"
	"github.com/tigerding/stockapi/internal/config"
	"github.com/tigerding/stockapi/internal/metainfo"
	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/internal/providers/finviz"
	"github.com/tigerding/stockapi/internal/providers/yahoo"
	"github.com/tigerding/stockapi/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stockapi",
	Short: "stockapi — equity market data aggregation service",
	Long: `stockapi aggregates equity market data — price history, financial
statements, SEC filings, tags, news, and descriptive metadata — from a
structured provider and a scraped source, normalized into one canonical
schema and served over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stockapi %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Starting stockapi server on %s\n", addr)

		srv := api.NewServer(cfg, version)
		return srv.ListenAndServe(addr)
	},
}

// --- Fetch Commands ---

// fetchCmd mirrors the HTTP endpoints on the command line, printing CSV to
// stdout.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch data for a ticker and print it as CSV",
}

func init() {
	fetchHistoryCmd.Flags().String("period", "", "named lookback period (1d..10y, ytd, max)")
	fetchHistoryCmd.Flags().String("start", "", "range start, YYYY-MM-DD")
	fetchHistoryCmd.Flags().String("end", "", "range end, YYYY-MM-DD")
	fetchHistoryCmd.Flags().String("interval", "1d", "bar interval")

	fetchNewsCmd.Flags().String("source", "finviz", "news source: finviz or yahoo")

	fetchCmd.AddCommand(fetchHistoryCmd)
	fetchCmd.AddCommand(fetchTagsCmd)
	fetchCmd.AddCommand(fetchNewsCmd)
	fetchCmd.AddCommand(fetchMetaInfoCmd)
}

func newClients() (*yahoo.Client, *finviz.Client) {
	y := yahoo.New(cfg.Gate())
	if cfg.Upstream.YahooBaseURL != "" {
		y.BaseURL = cfg.Upstream.YahooBaseURL
	}
	if cfg.Upstream.YahooFeedURL != "" {
		y.FeedURL = cfg.Upstream.YahooFeedURL
	}
	f := finviz.New()
	if cfg.Upstream.FinvizBaseURL != "" {
		f.BaseURL = cfg.Upstream.FinvizBaseURL
	}
	return y, f
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func printCSV(header []string, rows [][]string) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

var fetchHistoryCmd = &cobra.Command{
	Use:   "history [ticker]",
	Short: "Fetch price history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		period, _ := cmd.Flags().GetString("period")
		interval, _ := cmd.Flags().GetString("interval")

		req, err := provider.ParseHistoryRequest(start, end, period)
		if err != nil {
			return err
		}

		y, _ := newClients()
		ctx, cancel := cmdContext()
		defer cancel()

		bars, err := y.History(ctx, strings.ToUpper(args[0]), interval, req)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(bars))
		for _, b := range bars {
			rows = append(rows, []string{
				b.Date.Format("2006-01-02"),
				strconv.FormatFloat(b.Open, 'f', -1, 64),
				strconv.FormatFloat(b.High, 'f', -1, 64),
				strconv.FormatFloat(b.Low, 'f', -1, 64),
				strconv.FormatFloat(b.Close, 'f', -1, 64),
				strconv.FormatInt(b.Volume, 10),
			})
		}
		return printCSV([]string{"date", "open", "high", "low", "close", "volume"}, rows)
	},
}

var fetchTagsCmd = &cobra.Command{
	Use:   "tags [ticker]",
	Short: "Fetch classification tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, f := newClients()
		ctx, cancel := cmdContext()
		defer cancel()

		tags, err := f.Tags(ctx, strings.ToUpper(args[0]))
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(tags))
		for _, t := range tags {
			rows = append(rows, []string{t.Name, t.Link})
		}
		return printCSV([]string{"name", "link"}, rows)
	},
}

var fetchNewsCmd = &cobra.Command{
	Use:   "news [ticker]",
	Short: "Fetch news stories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		ticker := strings.ToUpper(args[0])

		y, f := newClients()
		ctx, cancel := cmdContext()
		defer cancel()

		var items []models.NewsItem
		var err error
		switch source {
		case "finviz":
			items, err = f.News(ctx, ticker)
		case "yahoo":
			items, err = y.RSSNews(ctx, ticker)
		default:
			return fmt.Errorf("invalid news source %q", source)
		}
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(items))
		for _, n := range items {
			rows = append(rows, []string{
				n.Date.Format("2006-01-02 15:04"), n.Title, n.Link, n.Publisher,
			})
		}
		return printCSV([]string{"date", "title", "link", "publisher"}, rows)
	},
}

var fetchMetaInfoCmd = &cobra.Command{
	Use:   "metainfo [ticker]",
	Short: "Fetch the merged metadata record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := strings.ToUpper(args[0])

		y, f := newClients()
		ctx, cancel := cmdContext()
		defer cancel()

		structured, err := y.PartialMetaInfo(ctx, ticker)
		if err != nil {
			return err
		}
		scraped, err := f.PartialMetaInfo(ctx, ticker)
		if err != nil {
			return err
		}
		earnings, err := y.EarningsDate(ctx, ticker)
		if err != nil {
			return err
		}

		meta, err := metainfo.Finalize(structured.Merge(scraped), earnings)
		if err != nil {
			return err
		}

		rows := make([][]string, 0)
		for _, row := range metainfo.Table(meta) {
			rows = append(rows, []string{row.Key, row.Value})
		}
		return printCSV([]string{"key", "value"}, rows)
	},
}
