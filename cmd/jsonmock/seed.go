package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/theheadmen/jsonmock/internal/serverconfig"
	"github.com/theheadmen/jsonmock/internal/storage/database"
)

var errNoDatabase = errors.New("seed requires --database-dsn or DATABASE_DSN")

// newSeedCmd записывает встроенный набор (или db.json из --file) в PostgreSQL.
func newSeedCmd(configStore *config.ConfigStore) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in dataset or a db.json file into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configStore.FlagDB == "" {
				return errNoDatabase
			}
			ctx := cmd.Context()

			// читаем из файла или встроенного набора, а не из той же базы
			readFrom := *configStore
			readFrom.FlagDB = ""
			dataset, err := loadDataset(ctx, &readFrom)
			if err != nil {
				return err
			}

			source, err := database.NewDatabaseSource(ctx, configStore.FlagDB)
			if err != nil {
				return err
			}
			defer closeSource(source)

			if err := source.Seed(ctx, dataset); err != nil {
				return fmt.Errorf("seed database: %w", err)
			}
			doc := dataset.Document()
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d comments, %d todos, %d albums\n",
				len(doc.Users), len(doc.Posts), len(doc.Comments), len(doc.Todos), len(doc.Albums))
			return nil
		},
	}
}
