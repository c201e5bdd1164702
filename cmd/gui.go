package main

import (
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stopwatch/internal/ui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the stopwatch window",
	RunE: func(cmd *cobra.Command, args []string) error {
		configManager, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := configManager.GetConfig()

		myApp := app.New()
		mainWindow := ui.NewMainWindow(myApp, configManager, logrus.NewEntry(log))
		mainWindow.SetSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight))
		mainWindow.Show()
		return nil
	},
}
