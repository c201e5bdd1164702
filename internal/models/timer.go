package models

// Phase 是计时器的逻辑状态
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
)

func (p Phase) String() string {
	if p == PhaseActive {
		return "active"
	}
	return "idle"
}

// TimerState 是计时器的全部状态
type TimerState struct {
	ElapsedTicks int  // 自上次重置以来的 tick 数
	IsRunning    bool // 是否有活动的 tick 源
}

func (s TimerState) Phase() Phase {
	if s.IsRunning {
		return PhaseActive
	}
	return PhaseIdle
}

// Event 是驱动状态转换的事件
type Event int

const (
	EventStart Event = iota
	EventStop
	EventReset
	EventTick
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventReset:
		return "reset"
	case EventTick:
		return "tick"
	}
	return "unknown"
}

// Reduce 处理所有状态转换，纯函数
func Reduce(state TimerState, ev Event) TimerState {
	switch ev {
	case EventStart:
		state.IsRunning = true
	case EventStop:
		state.IsRunning = false
	case EventReset:
		return TimerState{}
	case EventTick:
		// 未运行时丢弃
		if state.IsRunning {
			state.ElapsedTicks++
		}
	}
	return state
}
