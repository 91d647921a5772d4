package corpus

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
)

// Progress receives one Add per collected utterance. It never sees results
// and cannot reorder them. *progressbar.ProgressBar satisfies it.
type Progress interface {
	ChangeMax(max int)
	Add(num int) error
	Finish() error
}

// Builder preprocesses a whole corpus directory.
type Builder struct {
	Processor *Processor
	// Workers bounds how many utterances are processed at once. Values
	// below 1 mean sequential processing.
	Workers  int
	Progress Progress
	Logger   *slog.Logger
}

type result struct {
	entry Entry
	err   error
}

// Build reads <inDir>/texts.csv and processes every utterance, returning the
// manifest entries in index file order.
//
// A malformed index line fails before any utterance is processed. Otherwise
// results are collected in file order and the first failing utterance, by
// position, is returned as an *UtteranceError. Once any utterance has failed
// no further utterances are started; those already running are waited for,
// not cancelled. Cancelling ctx has the same effect and returns ctx.Err().
func (b *Builder) Build(ctx context.Context, inDir string) ([]Entry, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	utterances, err := ReadIndex(filepath.Join(inDir, IndexFile))
	if err != nil {
		return nil, err
	}
	workers := max(b.Workers, 1)
	logger.Info("corpus index loaded",
		slog.String("dir", inDir),
		slog.Int("utterances", len(utterances)),
		slog.Int("workers", workers),
	)

	futures := make([]chan result, len(utterances))
	for i := range futures {
		futures[i] = make(chan result, 1)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	defer func() {
		close(stop)
		wg.Wait()
	}()

	// failed is closed by the first failing task before it frees its slot,
	// so the dispatcher sees it on the next acquire.
	failed := make(chan struct{})
	var failOnce sync.Once

	wg.Add(1)
	go func() {
		defer wg.Done()
		sem := make(chan struct{}, workers)
		for i, u := range utterances {
			select {
			case sem <- struct{}{}:
			case <-stop:
				return
			case <-failed:
				return
			case <-ctx.Done():
				return
			}
			select {
			case <-stop:
			case <-failed:
			case <-ctx.Done():
			default:
				wg.Add(1)
				go func(u Utterance, future chan<- result) {
					defer wg.Done()
					defer func() { <-sem }()
					entry, err := b.Processor.Process(u.Index, u.WavPath(inDir), u.Transcript)
					if err != nil {
						failOnce.Do(func() { close(failed) })
					}
					future <- result{entry: entry, err: err}
				}(u, futures[i])
				continue
			}
			<-sem
			return
		}
	}()

	if b.Progress != nil {
		b.Progress.ChangeMax(len(utterances))
	}

	entries := make([]Entry, 0, len(utterances))
	for i, u := range utterances {
		if err := ctx.Err(); err != nil {
			logger.Warn("corpus build cancelled", slog.Int("collected", len(entries)))
			return nil, err
		}
		var r result
		select {
		case r = <-futures[i]:
		case <-ctx.Done():
			logger.Warn("corpus build cancelled", slog.Int("collected", len(entries)))
			return nil, ctx.Err()
		}
		if r.err != nil {
			logger.Error("utterance failed",
				slog.Int("index", u.Index),
				slog.Int("line", u.Line),
				slog.String("id", u.ID),
				slog.Any("error", r.err),
			)
			return nil, &UtteranceError{
				Index:   u.Index,
				Line:    u.Line,
				ID:      u.ID,
				WavPath: u.WavPath(inDir),
				Err:     r.err,
			}
		}
		logger.Debug("utterance processed",
			slog.Int("index", u.Index),
			slog.String("id", u.ID),
			slog.Int("frames", r.entry.Frames),
		)
		entries = append(entries, r.entry)
		if b.Progress != nil {
			_ = b.Progress.Add(1)
		}
	}

	if b.Progress != nil {
		_ = b.Progress.Finish()
	}
	return entries, nil
}
