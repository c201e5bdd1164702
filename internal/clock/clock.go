// Package clock provides the recurring-callback primitive that drives timers.
package clock

import (
	"sync"
	"time"
)

// Handle cancels a recurring registration. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler registers a callback to be invoked roughly every interval
// until the returned Handle is canceled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// Cancel cancels h. It is safe to call with a nil handle.
func Cancel(h Handle) {
	if h != nil {
		h.Cancel()
	}
}

// System is the default Scheduler backed by time.Ticker.
var System Scheduler = systemScheduler{}

type systemScheduler struct{}

func (systemScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{done: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				// select 随机选择分支，取消后再次确认
				select {
				case <-h.done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return h
}

type tickerHandle struct {
	once sync.Once
	done chan struct{}
}

// Cancel never waits for the ticker goroutine; a callback already running
// finishes on its own.
func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.done) })
}
