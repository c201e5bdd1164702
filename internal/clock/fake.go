package clock

import (
	"sync"
	"time"
)

// Fake is a Scheduler for tests. Registrations only fire when the test
// calls Fire or Advance.
type Fake struct {
	mu      sync.Mutex
	regs    []*fakeReg
	created int
}

type fakeReg struct {
	f        *Fake
	interval time.Duration
	fn       func()
	carry    time.Duration
	canceled bool
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Every(interval time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := &fakeReg{f: f, interval: interval, fn: fn}
	f.regs = append(f.regs, r)
	f.created++
	return r
}

func (r *fakeReg) Cancel() {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if r.canceled {
		return
	}
	r.canceled = true
	for i, reg := range r.f.regs {
		if reg == r {
			r.f.regs = append(r.f.regs[:i], r.f.regs[i+1:]...)
			break
		}
	}
}

// Fire invokes every active registration once, in registration order.
// A registration canceled by an earlier callback in the same round is skipped.
func (f *Fake) Fire() {
	for _, r := range f.snapshot() {
		if r.active() {
			r.fn()
		}
	}
}

// FireN calls Fire n times.
func (f *Fake) FireN(n int) {
	for i := 0; i < n; i++ {
		f.Fire()
	}
}

// Advance moves fake time forward by d and fires each active registration
// once per whole interval elapsed, carrying any remainder into the next call.
func (f *Fake) Advance(d time.Duration) {
	for _, r := range f.snapshot() {
		f.mu.Lock()
		r.carry += d
		n := 0
		if r.interval > 0 {
			n = int(r.carry / r.interval)
			r.carry -= time.Duration(n) * r.interval
		}
		f.mu.Unlock()

		for i := 0; i < n && r.active(); i++ {
			r.fn()
		}
	}
}

// Active returns the number of registrations that have not been canceled.
func (f *Fake) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.regs)
}

// Created returns how many registrations were ever made.
func (f *Fake) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

// callbacks run without f.mu held so they may cancel registrations
func (f *Fake) snapshot() []*fakeReg {
	f.mu.Lock()
	defer f.mu.Unlock()
	regs := make([]*fakeReg, len(f.regs))
	copy(regs, f.regs)
	return regs
}

func (r *fakeReg) active() bool {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return !r.canceled
}
