package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"moviequiz/config"
	"moviequiz/imdb"
	"moviequiz/quiz"
	"moviequiz/stats"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *imdb.Client
	loader  *imdb.Loader

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moviequiz",
	Short: "A yes/no movie rating quiz played against the IMDb Top-250",
	Long: `moviequiz fetches the top-movies catalog, turns each entry into a
yes/no rating-comparison question, and tracks your best game and lifetime
accuracy across runs.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information shown by --version.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
}

// initializeApp initializes the configuration and the catalog client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client = imdb.NewClient(logger)
	loader = imdb.NewLoader(client, cfg.IMDb.URL, cfg.IMDb.APIKey, logger)

	return nil
}

// openStatsStore opens the durable statistics store from the config.
func openStatsStore() (stats.Service, error) {
	store, err := stats.NewSQLiteStore(cfg.Stats.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open statistics store: %w", err)
	}
	return store, nil
}

// newFactory builds the question factory from the config.
func newFactory() (*quiz.Factory, error) {
	var opts []quiz.FactoryOption

	if cfg.Quiz.Filter != "" {
		filter, err := quiz.CompileMovieFilter(cfg.Quiz.Filter)
		if err != nil {
			return nil, fmt.Errorf("invalid quiz.filter: %w", err)
		}
		opts = append(opts, quiz.WithMovieFilter(filter))
	}

	if cfg.Quiz.HonestAnswers {
		opts = append(opts, quiz.WithHonestAnswers())
	}

	return quiz.NewFactory(loader, client, logger, opts...), nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
