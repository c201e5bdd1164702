package ui

import (
	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"stopwatch/internal/clock"
	"stopwatch/internal/config"
)

type MainWindow struct {
	window        fyne.Window
	timerManager  *TimerManager
	configManager *config.Manager
}

func NewMainWindow(app fyne.App, configManager *config.Manager, log *logrus.Entry) *MainWindow {
	cfg := configManager.GetConfig()

	w := &MainWindow{
		window:        app.NewWindow(cfg.App.Name),
		configManager: configManager,
	}
	w.timerManager = NewTimerManager(w.window, clock.System, cfg.Timer, log)
	w.setup()
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup() {
	w.timerManager.AddTimer("Timer")
	w.window.SetContent(w.timerManager.container)

	// 所有退出路径都要释放 tick 源
	w.window.SetOnClosed(w.timerManager.CloseAll)
}

func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}
