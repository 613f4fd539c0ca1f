package main

import (
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/theheadmen/jsonmock/internal/serverconfig"
	"github.com/theheadmen/jsonmock/internal/storage/file"
)

// newExportCmd сохраняет текущий источник в файл формата db.json.
func newExportCmd(configStore *config.ConfigStore) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured dataset to a db.json file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataset, err := loadDataset(cmd.Context(), configStore)
			if err != nil {
				return err
			}
			if err := file.Save(output, dataset); err != nil {
				return fmt.Errorf("export dataset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s dataset to %s\n", configStore.SourceKind(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "db.json", "file to write")
	return cmd
}
