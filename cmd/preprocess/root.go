package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neurlang/ttsprep/config"
)

type options struct {
	baseDir    string
	configPath string
	dataset    string
	output     string
	workers    int
	logLevel   string
	logFormat  string
}

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tacotron"
	}
	return filepath.Join(home, "tacotron")
}

func newRootCommand() *cobra.Command {
	var opts options
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:           "preprocess",
		Short:         "Compute spectrogram training artifacts for a speech corpus",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd, opts.baseDir, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseDir, "base-dir", defaultBaseDir(), "Directory holding the dataset and output directories")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path (.yaml or .toml)")
	flags.StringVar(&opts.dataset, "dataset", defaults.Dataset, "Corpus directory name under the base directory")
	flags.StringVar(&opts.output, "output", defaults.Output, "Output directory name under the base directory")
	flags.IntVar(&opts.workers, "num-workers", defaults.Workers, "Number of utterances processed concurrently")
	flags.StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", defaults.LogFormat, "Log format (console, json)")

	return cmd
}

// loadConfig reads the config file, if any, and applies the flags the user
// set explicitly on top of it.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset = opts.dataset
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("num-workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
