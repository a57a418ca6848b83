/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/serdebench/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file populated with the default benchmark settings.

Examples:
	  serdebench init
	  serdebench init --path=./serdebench.yaml --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		written, err := writeDefaultConfig(path, force)
		if err != nil {
			return err
		}
		if !written {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", path)
			return nil
		}

		cmd.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("path", "", "Where to write the config (defaults to the standard config path)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

// writeDefaultConfig saves DefaultConfig to path. It reports false when the
// file exists and force is not set.
func writeDefaultConfig(path string, force bool) (bool, error) {
	if config.ConfigExists(path) && !force {
		return false, nil
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
