package main

import (
	"github.com/spf13/cobra"

	"github.com/theheadmen/jsonmock/internal/logger"
	config "github.com/theheadmen/jsonmock/internal/serverconfig"
)

// newRootCmd собирает дерево команд. Без подкоманды запускается serve.
func newRootCmd() *cobra.Command {
	configStore := config.NewConfigStore()

	rootCmd := &cobra.Command{
		Use:           "jsonmock",
		Short:         "Mock REST server with users, posts, comments, todos and albums",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := configStore.Resolve(cmd.Flags()); err != nil {
				return err
			}
			return logger.Initialize(configStore.FlagLogLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configStore)
		},
	}
	configStore.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newServeCmd(configStore),
		newSeedCmd(configStore),
		newExportCmd(configStore),
		newCheckCmd(),
	)
	return rootCmd
}
