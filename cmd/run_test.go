package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"stopwatch/internal/clock"
	"stopwatch/internal/models"
)

func waitActive(t *testing.T, fake *clock.Fake, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for fake.Active() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Active() = %d, want %d", fake.Active(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunStopwatchStopsAtLimit(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fake := clock.NewFake()

	result := make(chan models.TimerState, 1)
	go func() {
		result <- runStopwatch(context.Background(), fake, time.Second, 3, logrus.NewEntry(logger))
	}()

	waitActive(t, fake, 1)
	// 超过上限的 tick 不再计数
	fake.FireN(6)

	select {
	case got := <-result:
		if got != (models.TimerState{ElapsedTicks: 3}) {
			t.Errorf("final state = %+v, want {3 false}", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runStopwatch did not return after reaching the limit")
	}

	if fake.Active() != 0 {
		t.Errorf("tick source leaked: Active() = %d", fake.Active())
	}

	var ticks int
	for _, e := range hook.AllEntries() {
		if e.Message == "tick" {
			ticks++
		}
	}
	if ticks != 3 {
		t.Errorf("logged %d ticks, want 3", ticks)
	}
}

func TestRunStopwatchInterrupted(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fake := clock.NewFake()
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan models.TimerState, 1)
	go func() {
		result <- runStopwatch(ctx, fake, time.Second, 0, logrus.NewEntry(logger))
	}()

	waitActive(t, fake, 1)
	fake.FireN(2)
	cancel()

	select {
	case got := <-result:
		if got != (models.TimerState{ElapsedTicks: 2}) {
			t.Errorf("final state = %+v, want {2 false}", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runStopwatch did not return after cancel")
	}
	if fake.Active() != 0 {
		t.Errorf("tick source leaked: Active() = %d", fake.Active())
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--config", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "interval: 1s") {
		t.Errorf("output missing timer interval:\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), "# "+path) {
		t.Errorf("output missing config path header:\n%s", out.String())
	}
}
