package cli

import (
	"fmt"

	"github.com/marmotbyte/stash/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "Show or initialize the stash configuration file",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration including defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			encoded, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			cmd.Print(string(encoded))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  "Create the configuration file with default values at the default location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := ""
			if ConfigPath != nil {
				path = *ConfigPath
			}
			if path == "" {
				defaultPath, err := config.GetDefaultConfigPath()
				if err != nil {
					return fmt.Errorf("failed to get default config path: %w", err)
				}
				path = defaultPath
			}

			if !force {
				if existing, err := config.LoadConfig(path); err == nil && existing != nil {
					if *existing != *config.DefaultConfig() {
						return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
					}
				}
			}

			if err := config.DefaultConfig().SaveConfig(path); err != nil {
				return err
			}
			cmd.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
