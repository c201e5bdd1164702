package models

import "testing"

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		state TimerState
		ev    Event
		want  TimerState
	}{
		{"start from idle", TimerState{ElapsedTicks: 4}, EventStart, TimerState{ElapsedTicks: 4, IsRunning: true}},
		{"start while running", TimerState{ElapsedTicks: 4, IsRunning: true}, EventStart, TimerState{ElapsedTicks: 4, IsRunning: true}},
		{"stop while running", TimerState{ElapsedTicks: 7, IsRunning: true}, EventStop, TimerState{ElapsedTicks: 7}},
		{"stop while idle", TimerState{ElapsedTicks: 7}, EventStop, TimerState{ElapsedTicks: 7}},
		{"reset while running", TimerState{ElapsedTicks: 9, IsRunning: true}, EventReset, TimerState{}},
		{"reset while idle", TimerState{ElapsedTicks: 9}, EventReset, TimerState{}},
		{"tick while running", TimerState{ElapsedTicks: 2, IsRunning: true}, EventTick, TimerState{ElapsedTicks: 3, IsRunning: true}},
		{"tick while idle", TimerState{ElapsedTicks: 2}, EventTick, TimerState{ElapsedTicks: 2}},
		{"unknown event", TimerState{ElapsedTicks: 1, IsRunning: true}, Event(42), TimerState{ElapsedTicks: 1, IsRunning: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(tt.state, tt.ev); got != tt.want {
				t.Errorf("Reduce(%+v, %v) = %+v, want %+v", tt.state, tt.ev, got, tt.want)
			}
		})
	}
}

func TestReduceSequenceNeverDecreases(t *testing.T) {
	events := []Event{
		EventTick, EventStart, EventTick, EventTick, EventStart, EventTick,
		EventStop, EventTick, EventStop, EventStart, EventTick,
	}

	var s TimerState
	prev := 0
	for i, ev := range events {
		s = Reduce(s, ev)
		if s.ElapsedTicks < prev {
			t.Fatalf("step %d (%v): ticks went from %d to %d", i, ev, prev, s.ElapsedTicks)
		}
		prev = s.ElapsedTicks
	}

	if s.ElapsedTicks != 5 || !s.IsRunning {
		t.Errorf("final state = %+v, want {5 true}", s)
	}

	s = Reduce(s, EventReset)
	if s != (TimerState{}) {
		t.Errorf("after reset = %+v, want zero state", s)
	}
}

func TestPhase(t *testing.T) {
	if p := (TimerState{}).Phase(); p != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", p)
	}
	if p := (TimerState{IsRunning: true}).Phase(); p != PhaseActive {
		t.Errorf("Phase() = %v, want active", p)
	}
	if PhaseActive.String() != "active" || PhaseIdle.String() != "idle" {
		t.Error("unexpected Phase strings")
	}
}

func TestEventString(t *testing.T) {
	want := map[Event]string{
		EventStart: "start",
		EventStop:  "stop",
		EventReset: "reset",
		EventTick:  "tick",
		Event(-1):  "unknown",
	}
	for ev, s := range want {
		if ev.String() != s {
			t.Errorf("Event(%d).String() = %q, want %q", int(ev), ev.String(), s)
		}
	}
}
