package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/logger"
	config "github.com/theheadmen/jsonmock/internal/serverconfig"
	"github.com/theheadmen/jsonmock/internal/storage"
	"github.com/theheadmen/jsonmock/internal/storage/database"
	"github.com/theheadmen/jsonmock/internal/storage/file"
	"github.com/theheadmen/jsonmock/internal/storage/memory"
)

// openSource выбирает источник данных по конфигурации: база, затем файл, затем встроенный набор.
func openSource(ctx context.Context, configStore *config.ConfigStore) (storage.Source, error) {
	kind := configStore.SourceKind()
	logger.Log.Info("Opening dataset source", zap.String("kind", kind))

	switch kind {
	case config.SourceDatabase:
		source, err := database.NewDatabaseSource(ctx, configStore.FlagDB)
		if err != nil {
			return nil, err
		}
		return source, nil
	case config.SourceFile:
		return file.NewFileSource(configStore.FlagFile), nil
	default:
		return memory.NewSource(), nil
	}
}

// loadDataset читает снимок из источника и сразу закрывает его.
func loadDataset(ctx context.Context, configStore *config.ConfigStore) (*storage.Dataset, error) {
	source, err := openSource(ctx, configStore)
	if err != nil {
		return nil, err
	}
	defer closeSource(source)

	return source.Load(ctx)
}

func closeSource(source storage.Source) {
	if err := source.Close(); err != nil {
		logger.Log.Info("Error closing dataset source", zap.Error(err))
	}
}
