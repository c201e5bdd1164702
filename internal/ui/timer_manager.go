package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"stopwatch/internal/clock"
	"stopwatch/internal/config"
)

// TimerManager 管理多个互相独立的计时器
type TimerManager struct {
	container *fyne.Container
	timers    []*TimerView
	addButton *widget.Button

	window fyne.Window
	sched  clock.Scheduler
	cfg    config.TimerConfig
	log    *logrus.Entry
}

func NewTimerManager(window fyne.Window, sched clock.Scheduler, cfg config.TimerConfig, log *logrus.Entry) *TimerManager {
	tm := &TimerManager{
		timers: make([]*TimerView, 0),
		window: window,
		sched:  sched,
		cfg:    cfg,
		log:    log,
	}

	tm.addButton = widget.NewButton("Add timer", tm.showAddDialog)

	// 使用网格布局来展示多个计时器
	tm.container = container.NewVBox(
		tm.addButton,
		container.NewGridWithColumns(2),
	)

	return tm
}

func (tm *TimerManager) showAddDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Timer name")

	dialog.ShowForm("Add timer", "Add", "Cancel",
		[]*widget.FormItem{{Text: "Name", Widget: nameEntry}},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("timer name is required"), tm.window)
				return
			}
			tm.AddTimer(nameEntry.Text)
		}, tm.window)
}

// AddTimer 创建新的计时器，配置了 autostart 时立即开始
func (tm *TimerManager) AddTimer(name string) *TimerView {
	view := NewTimerView(name, tm.sched, tm.cfg.Interval, tm.log)
	view.SetOnDelete(func() {
		tm.removeTimer(view)
	})
	tm.timers = append(tm.timers, view)
	tm.updateLayout()

	if tm.cfg.AutoStart {
		view.Start()
	}
	tm.log.WithField("timer", name).Info("timer added")
	return view
}

func (tm *TimerManager) removeTimer(view *TimerView) {
	// 先释放 tick 源
	view.Close()

	for i, t := range tm.timers {
		if t == view {
			tm.timers = append(tm.timers[:i], tm.timers[i+1:]...)
			break
		}
	}

	tm.updateLayout()
	tm.log.WithField("timer", view.name).Info("timer removed")
}

// CloseAll 关闭所有计时器，窗口关闭时调用
func (tm *TimerManager) CloseAll() {
	for _, t := range tm.timers {
		t.Close()
	}
}

func (tm *TimerManager) updateLayout() {
	grid := container.NewGridWithColumns(2)
	for _, t := range tm.timers {
		grid.Add(t.container)
	}

	tm.container.Objects[1] = grid
	tm.container.Refresh()
}
