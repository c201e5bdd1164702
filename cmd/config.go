package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		configManager, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(configManager.GetConfig())
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", configManager.Path(), data)
		return nil
	},
}
