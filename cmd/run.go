package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stopwatch/internal/clock"
	"stopwatch/internal/models"
	"stopwatch/internal/timer"
)

var (
	runOpts = struct {
		ticks    int
		interval time.Duration
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a stopwatch in the terminal",
		Long:  "Start one stopwatch and log every tick until interrupted or --ticks is reached.",
		RunE: func(cmd *cobra.Command, args []string) error {
			configManager, err := loadConfig()
			if err != nil {
				return err
			}

			interval := configManager.GetConfig().Timer.Interval
			if cmd.Flags().Changed("interval") {
				if runOpts.interval <= 0 {
					return fmt.Errorf("--interval must be positive, got %v", runOpts.interval)
				}
				interval = runOpts.interval
			}
			if runOpts.ticks < 0 {
				return fmt.Errorf("--ticks must not be negative, got %d", runOpts.ticks)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			final := runStopwatch(ctx, clock.System, interval, runOpts.ticks, logrus.NewEntry(log))
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d ticks)\n", timer.FormatElapsed(final.ElapsedTicks, interval), final.ElapsedTicks)
			return nil
		},
	}
)

func init() {
	runCmd.Flags().IntVarP(&runOpts.ticks, "ticks", "n", 0, "stop after this many ticks (0 runs until interrupted)")
	runCmd.Flags().DurationVarP(&runOpts.interval, "interval", "i", 0, "tick interval (overrides timer.interval)")
}

// runStopwatch 运行一个计时器直到 ctx 结束或达到 limit 个 tick，返回最终状态
func runStopwatch(ctx context.Context, sched clock.Scheduler, interval time.Duration, limit int, log *logrus.Entry) models.TimerState {
	done := make(chan struct{})
	var once sync.Once

	ctrl := timer.NewController(sched,
		timer.WithInterval(interval),
		timer.WithTickLimit(limit),
		timer.WithLogger(log),
		timer.WithOnChange(func(s models.TimerState) {
			switch {
			case s.ElapsedTicks == 0:
			case s.Phase() == models.PhaseActive:
				log.WithFields(logrus.Fields{
					"ticks":   s.ElapsedTicks,
					"elapsed": timer.FormatElapsed(s.ElapsedTicks, interval),
				}).Info("tick")
			case limit > 0 && s.ElapsedTicks >= limit:
				// 控制器在达到上限的 tick 上自行停止
				once.Do(func() { close(done) })
			}
		}),
	)
	defer ctrl.Close()

	ctrl.Start()

	select {
	case <-ctx.Done():
		log.Info("interrupted")
	case <-done:
	}

	ctrl.Stop()
	return ctrl.Snapshot()
}
