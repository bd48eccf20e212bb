package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(config)
			if err != nil {
				return errors.Wrap(err, "failed marshal config")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
