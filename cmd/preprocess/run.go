package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/mjibson/go-dsp/fft"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/neurlang/ttsprep/config"
	"github.com/neurlang/ttsprep/corpus"
	"github.com/neurlang/ttsprep/logging"
)

func run(cmd *cobra.Command, baseDir string, cfg *config.Config) (err error) {
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inDir := filepath.Join(baseDir, cfg.Dataset)
	outDir := filepath.Join(baseDir, cfg.Output)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	unlock, err := corpus.LockOutput(outDir)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			logger.Warn("release output lock", slog.Any("error", uerr))
		}
	}()

	fft.SetWorkerPoolSize(cfg.FFTWorkers)

	builder := &corpus.Builder{
		Processor: corpus.NewProcessor(&cfg.Audio, outDir, cfg.Prefix),
		Workers:   cfg.Workers,
		Logger:    logger,
	}
	if bar := newProgressBar(cmd.ErrOrStderr()); bar != nil {
		builder.Progress = bar
	}

	logger.Info("preprocessing corpus",
		slog.String("input", inDir),
		slog.String("output", outDir),
		slog.String("prefix", cfg.Prefix),
	)
	entries, err := builder.Build(ctx, inDir)
	if err != nil {
		return err
	}

	manifest := filepath.Join(outDir, corpus.ManifestFile)
	if err := corpus.WriteManifestFile(manifest, entries); err != nil {
		return err
	}
	logger.Info("manifest written", slog.String("path", manifest), slog.Int("entries", len(entries)))

	summary := corpus.Summarize(entries, cfg.Audio.FrameShiftMs)
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	return nil
}

// newProgressBar returns nil unless w is a terminal.
func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(f),
		progressbar.OptionSetDescription("utterances"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
