package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matst80/slask-catalog/pkg/browser"
	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/logging"
	"github.com/matst80/slask-catalog/pkg/search"
	"github.com/matst80/slask-catalog/pkg/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	catalogUrl string
	pageSize   int
	debounce   time.Duration
	verbose    bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the product catalog in the terminal",
	Long: `Fetches the product catalog once and lets you search, filter by category,
sort and page through it. Search input is applied after a short pause in typing.`,
	SilenceUsage: true,
	RunE:         runBrowse,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&catalogUrl, "url", "", "catalog endpoint (overrides config)")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "products per page (overrides config)")
	rootCmd.Flags().DurationVar(&debounce, "debounce", -1, "search debounce, e.g. 300ms (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", "browse.log", "log output path")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("url") {
		cfg.CatalogUrl = catalogUrl
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = pageSize
	}
	if cmd.Flags().Changed("debounce") {
		cfg.DebounceMs = int(debounce / time.Millisecond)
	}
	if verbose {
		cfg.LogLevel = logging.Verbose(verbose)
	}
	return cfg, cfg.Validate()
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pipeline, err := search.NewPipeline(cfg.Locale)
	if err != nil {
		return err
	}
	fetcher := catalog.NewHttpFetcher(cfg.CatalogUrl)
	fetcher.Timeout = cfg.FetchTimeout()

	session := browser.NewSession(catalog.NewLoader(fetcher, logger),
		browser.WithPageSize(cfg.PageSize),
		browser.WithDebounce(cfg.Debounce()),
		browser.WithPipeline(pipeline),
		browser.WithLogger(logger))
	defer session.Close()

	logger.Info("starting browser", zap.String("url", cfg.CatalogUrl), zap.String("session", session.Id()))
	if _, err := tea.NewProgram(tui.New(session), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("ui failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
