package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/rangecut/config"
	"gopkg.in/yaml.v3"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults and the config file are merged. --save writes it to the --config path or ~/.config/rangecut/config.yaml.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		if configSave {
			path := cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVar(&configSave, "save", false, "write the effective config to disk")
	rootCmd.AddCommand(configCmd)
}
