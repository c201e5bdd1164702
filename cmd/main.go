package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stopwatch/internal/config"
)

var (
	configPath string
	logLevel   string

	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:           "stopwatch",
		Short:         "A start/stop/reset stopwatch",
		Long:          "Stopwatch counts ticks while running. Without a subcommand it opens the desktop window.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return guiCmd.RunE(cmd, args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ~/.stopwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level from the config file")

	rootCmd.AddCommand(guiCmd, runCmd, configCmd)
}

// loadConfig 初始化配置管理器并应用日志设置
func loadConfig() (*config.Manager, error) {
	var (
		manager *config.Manager
		err     error
	)
	if configPath != "" {
		manager, err = config.NewManagerAt(configPath)
	} else {
		manager, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := manager.GetConfig().Log
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if err := logCfg.Apply(log); err != nil {
		return nil, fmt.Errorf("apply log config: %w", err)
	}
	return manager, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("stopwatch failed")
		os.Exit(1)
	}
}
