package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	run := &runOptions{}

	cmd := &cobra.Command{
		Use:           "drapery",
		Short:         "Drapery previews curtain fabrics, colors and sizes over a room photo",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisualizer(cmd, flags, run)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	run.bind(cmd)

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newCatalogCmd(flags))
	cmd.AddCommand(newSummaryCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
