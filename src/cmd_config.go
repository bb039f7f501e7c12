package main

import (
	"fmt"

	"github.com/contre95/musicrescue/src/features/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "write the default configuration to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Configuration written to %s\n", a.configPath)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.stdout, a.cfg.GetYAML())
			return nil
		},
	})
	return configCmd
}
