package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"stopwatch/internal/clock"
	"stopwatch/internal/models"
	"stopwatch/internal/timer"
)

// TimerView 显示一个计时器及其控制按钮
type TimerView struct {
	name string
	ctrl *timer.Controller

	// UI 组件
	container   *fyne.Container
	background  *canvas.Rectangle
	timeLabel   *canvas.Text
	statusLabel *canvas.Text
	startButton *widget.Button
	resetButton *widget.Button
	deleteBtn   *widget.Button

	onDelete func()
}

// 定义颜色常量
var (
	runningColor = color.NRGBA{R: 76, G: 175, B: 80, A: 180}   // 半透明绿色
	stoppedColor = color.NRGBA{R: 200, G: 200, B: 200, A: 180} // 半透明灰色
	textColor    = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	timeColor    = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
)

// NewTimerView 创建一个新的计时器视图，拥有独立的控制器
func NewTimerView(name string, sched clock.Scheduler, interval time.Duration, log *logrus.Entry) *TimerView {
	v := &TimerView{name: name}

	v.ctrl = timer.NewController(sched,
		timer.WithInterval(interval),
		timer.WithLogger(log.WithField("timer", name)),
		timer.WithOnChange(func(s models.TimerState) {
			// tick 在调度 goroutine 上触发
			fyne.Do(func() { v.render(s) })
		}),
	)

	v.background = canvas.NewRectangle(stoppedColor)
	v.background.CornerRadius = 20

	v.timeLabel = canvas.NewText(timer.FormatElapsed(0, interval), timeColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.timeLabel.TextSize = 32
	v.timeLabel.Alignment = fyne.TextAlignCenter

	v.statusLabel = canvas.NewText("Stopped", textColor)
	v.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.statusLabel.TextSize = 20
	v.statusLabel.Alignment = fyne.TextAlignCenter

	nameLabel := widget.NewLabelWithStyle(name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if v.onDelete != nil {
			v.onDelete()
		}
	})

	// 开始/停止共用一个按钮
	v.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if v.ctrl.Running() {
			v.ctrl.Stop()
		} else {
			v.ctrl.Start()
		}
	})
	v.startButton.Importance = widget.HighImportance

	v.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), v.ctrl.Reset)
	v.resetButton.Importance = widget.MediumImportance

	topBar := container.NewBorder(nil, nil, nameLabel, v.deleteBtn)

	content := container.NewVBox(
		topBar,
		container.NewPadded(v.timeLabel),
		container.NewPadded(v.statusLabel),
		container.NewHBox(v.startButton, v.resetButton),
	)

	v.container = container.NewStack(
		v.background,
		container.NewPadded(content),
	)

	return v
}

// render 只读取快照，必须在 UI 线程上调用
func (v *TimerView) render(s models.TimerState) {
	v.timeLabel.Text = timer.FormatElapsed(s.ElapsedTicks, v.ctrl.Interval())
	v.timeLabel.Refresh()

	switch s.Phase() {
	case models.PhaseActive:
		v.statusLabel.Text = "Running"
		v.background.FillColor = runningColor
		v.startButton.SetIcon(theme.MediaPauseIcon())
		v.startButton.SetText("Stop")
	default:
		v.statusLabel.Text = "Stopped"
		v.background.FillColor = stoppedColor
		v.startButton.SetIcon(theme.MediaPlayIcon())
		v.startButton.SetText("Start")
	}
	v.statusLabel.Refresh()
	v.background.Refresh()
}

func (v *TimerView) Start() {
	v.ctrl.Start()
}

// Close 释放控制器的 tick 源
func (v *TimerView) Close() {
	v.ctrl.Close()
}

func (v *TimerView) SetOnDelete(callback func()) {
	v.onDelete = callback
}
