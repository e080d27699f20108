package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/alphacut/internal/model"
)

const version = "alphacut v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "alphacut",
	Short: "alphacut - fuzzy set arithmetic on alpha-cuts",
	Long: `alphacut evaluates arithmetic on fuzzy sets represented by their alpha-cuts.

Sets are described in a YAML workload, either as explicit cuts or sampled
from a membership function. Operations add or subtract sets under a
chosen t-norm and may build on each other's results.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.alphacut/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".alphacut"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// ALPHACUT_ENGINE_WORKERS and friends
	viper.SetEnvPrefix("ALPHACUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig overlays viper values (file, env, bound flags) on the defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	registerDefaults(v, cfg)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Engine.Workers <= 0 {
		return nil, fmt.Errorf("engine.workers must be positive, got %d", cfg.Engine.Workers)
	}
	return cfg, nil
}

// registerDefaults makes every key known to viper so env vars are picked up by Unmarshal
func registerDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("engine.workers", cfg.Engine.Workers)
	v.SetDefault("engine.cache_enabled", cfg.Engine.CacheEnabled)
	v.SetDefault("engine.cache_ttl", cfg.Engine.CacheTTL)
	v.SetDefault("engine.cache_cleanup", cfg.Engine.CacheCleanup)
	v.SetDefault("plot.width_inches", cfg.Plot.WidthInches)
	v.SetDefault("plot.height_inches", cfg.Plot.HeightInches)
	v.SetDefault("plot.format", cfg.Plot.Format)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
}

// newLogger builds the stderr logger. Debug output is enabled by --verbose.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
