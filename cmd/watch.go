package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/qcheck/formatter"
	"github.com/gnolang/qcheck/runner"
	"github.com/gnolang/qcheck/scanner"
)

const watchDebounce = 100 * time.Millisecond

// watchCmd: qcheck watch <paths...>
var watchCmd = &cobra.Command{
	Use:   "watch <paths...>",
	Short: "Re-validate query files whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := runner.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("error creating watcher: %w", err)
		}
		defer watcher.Close()

		for _, path := range args {
			if err := addWatchPath(watcher, path); err != nil {
				return err
			}
		}

		qw := &queryWatcher{
			runner:   runner.New(config.NewValidator(logger), logger, config),
			scanner:  scanner.New(".", config.Extensions...),
			out:      cmd.OutOrStdout(),
			logger:   logger,
			debounce: watchDebounce,
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %d path(s) for changes...\n", len(args))
		return qw.watchLoop(ctx, watcher)
	},
}

// addWatchPath registers a file, or a directory and all of its
// subdirectories, with the watcher.
func addWatchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return watcher.Add(path)
	}

	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

type queryWatcher struct {
	runner   *runner.Runner
	scanner  *scanner.Scanner
	out      io.Writer
	logger   *zap.Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func (w *queryWatcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// handleEvent schedules a re-validation of a query file after it was written
// or created, and reports whether the event was accepted. Events for the same
// file that arrive within the debounce interval are coalesced into one run.
func (w *queryWatcher) handleEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if !w.scanner.IsTarget(event.Name) {
		return false
	}

	if w.debounce <= 0 {
		w.revalidate(event.Name)
		return true
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timers == nil {
		w.timers = make(map[string]*time.Timer)
	}
	// a timer that already fired is replaced, not reset
	if pending, ok := w.timers[event.Name]; ok && pending.Stop() {
		pending.Reset(w.debounce)
		return true
	}
	path := event.Name
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.mu.Unlock()
		w.revalidate(path)
	})
	w.timers[path] = timer
	return true
}

// revalidate processes one query file and prints its reports. It reports
// whether the file could be read.
func (w *queryWatcher) revalidate(path string) bool {
	reports, err := w.runner.ProcessFile(path)
	if err != nil {
		w.logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
		return false
	}

	invalid := runner.Invalid(reports)
	w.logger.Info("Re-validated file",
		zap.String("file", path),
		zap.Int("queries", len(reports)),
		zap.Int("invalid", invalid),
	)

	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprint(w.out, formatter.GenerateFormattedReport(reports))
	return true
}

func (w *queryWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}
