package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/pthm/clarity/internal/engine"
	"github.com/pthm/clarity/internal/reporter"
	"github.com/pthm/clarity/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchStrategy bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch files...",
	Short: "Re-review documents whenever they change",
	Long: `Review the given documents, then watch them and review again each
time one is saved. Press Ctrl+C to stop.

Examples:
  clarity watch proposal.md
  clarity watch --strategy proposal.md appendix.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchStrategy, "strategy", "s", false, "Also run strategic analysis")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before re-running")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	for _, a := range args {
		if a == "-" {
			return errors.New("watch needs files, not standard input")
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	mode := engine.ModeReview
	if watchStrategy {
		mode = engine.ModeAll
	}

	logger := newLogger()
	u := GetUI()

	// Debounced callbacks may overlap with a slow run
	var mu sync.Mutex
	run := func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		if err := runAnalysis(ctx, paths, mode, nil); err != nil && !errors.Is(err, reporter.ErrAnalysisFailed) {
			u.Errorf("%v", err)
		}
	}

	run(args)

	w, err := watch.New(args, watchDebounce, func(changed []string) {
		u.Infof("%s: %d changed", time.Now().Format(time.TimeOnly), len(changed))
		run(changed)
	}, logger)
	if err != nil {
		return err
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
