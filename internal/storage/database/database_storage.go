// Package database предоставляет источник данных, который читает коллекции из PostgreSQL.
package database

import (
	"context"
	"fmt"

	"github.com/theheadmen/jsonmock/internal/dbconnector"
	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/storage"
	"go.uber.org/zap"
)

// DatabaseSource реализует интерфейс storage.Source поверх базы данных.
type DatabaseSource struct {
	DB *dbconnector.DBConnector
}

// NewDatabaseSource подключается к базе данных и создает таблицы, если их нет.
func NewDatabaseSource(ctx context.Context, psqlInfo string) (*DatabaseSource, error) {
	dbConnector, err := dbconnector.NewDBConnector(ctx, psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &DatabaseSource{DB: dbConnector}, nil
}

// Load читает все таблицы один раз и строит снимок данных.
func (source *DatabaseSource) Load(ctx context.Context) (*storage.Dataset, error) {
	doc, err := source.DB.SelectDocument(ctx)
	if err != nil {
		logger.Log.Error("Failed to read from database", zap.Error(err))
		return nil, err
	}

	dataset, err := storage.NewDatasetFromDocument(doc)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Read data from database",
		zap.Int("users", len(doc.Users)),
		zap.Int("posts", len(doc.Posts)),
		zap.Int("comments", len(doc.Comments)),
		zap.Int("todos", len(doc.Todos)),
		zap.Int("albums", len(doc.Albums)),
	)
	return dataset, nil
}

// Seed записывает набор данных в пустые строки таблиц. Сервер его не вызывает.
func (source *DatabaseSource) Seed(ctx context.Context, dataset *storage.Dataset) error {
	return source.DB.InsertDocument(ctx, dataset.Document())
}

// Ping проверяет соединение с базой данных.
func (source *DatabaseSource) Ping(ctx context.Context) error {
	return source.DB.DB.PingContext(ctx)
}

func (source *DatabaseSource) Close() error {
	return source.DB.DB.Close()
}
