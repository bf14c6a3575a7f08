package scout

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scout/scout/internal/config"
)

var (
	flagConfigFile string
	flagWorkDir    string
	flagJSON       bool
	flagNoColor    bool
	flagVerbose    bool

	version = "0.1.0"

	logger = log.New()
)

// rootCmd is the base Cobra command for the Scout CLI.
var rootCmd = &cobra.Command{
	Use:           "scout",
	Short:         "Prepare documents and images for search",
	Long:          "Scout selects documents and images for OCR, embedding, object detection and face matching, and manages the caches those pipelines share.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		configureLogger(cmd.ErrOrStderr())
	},
}

// Execute runs the Scout CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", "", "explicit config file (skips .scout.yml and global lookup)")
	rootCmd.PersistentFlags().StringVar(&flagWorkDir, "workdir", "", "directory holding caches/ and logs/ (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log where each setting came from")
}

func configureLogger(w io.Writer) {
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: !useColor(w)})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// loadConfig is the single place the CLI builds its configuration.
func loadConfig() (*config.Config, error) {
	opts := []config.Option{config.WithLogger(logger)}
	if flagWorkDir != "" {
		opts = append(opts, config.WithWorkDir(flagWorkDir))
	}
	if flagConfigFile != "" {
		opts = append(opts, config.WithFile(flagConfigFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
