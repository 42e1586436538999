package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/newsanalyst/newsanalyst/internal/config"
	"github.com/newsanalyst/newsanalyst/internal/logging"
)

// Version is the CLI version, overridden at build time with -ldflags
var Version = "0.1.0"

var (
	cfgFile  string
	envFile  string
	logLevel string
	verbose  bool

	settings       = config.Default()
	configFileUsed string
	logger         = logging.Discard()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "newsanalyst",
	Short: "News Analyst - validate, classify, and assess news analysis records",
	Long: `News Analyst validates news sources, articles, fact-check claims, and
analysis results, derives bias and credibility labels from raw scores, and
assesses how well an analysis is supported by its verified claims.

Records are read from JSON or YAML documents, either a bare record, a list of
records, or an envelope of the form {"kind": "...", "records": [...]}.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of News Analyst.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newsanalyst v%s\n", Version)
	},
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle
	rootCmd.PersistentPreRunE = initConfig

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.newsanalyst/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads settings from defaults, config file, .env, and environment
func initConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)

	if err := v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("bind log-level flag: %w", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search for config in home directory
		v.AddConfigPath(filepath.Join(home, ".newsanalyst"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := config.MergeDotEnv(v, envFile); err != nil {
		return err
	}

	s, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings = s
	configFileUsed = v.ConfigFileUsed()

	level := settings.EffectiveLogLevel()
	if verbose && logLevel == "" {
		level = "debug"
	}
	logger = logging.New(level)
	slog.SetDefault(logger)

	return nil
}
