// Package file предоставляет реализацию источника данных, которая читает db.json
// в формате json-server с файловой системы.
package file

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileSource реализует интерфейс storage.Source для данных из файла.
type FileSource struct {
	filePath string
}

// NewFileSource создает новый экземпляр FileSource. Файл читается только в Load.
func NewFileSource(filePath string) *FileSource {
	return &FileSource{filePath: filePath}
}

// Load читает документ целиком и строит из него снимок данных.
func (source *FileSource) Load(_ context.Context) (*storage.Dataset, error) {
	data, err := os.ReadFile(source.filePath)
	if err != nil {
		logger.Log.Error("Failed to open file", zap.String("path", source.filePath), zap.Error(err))
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Log.Error("Failed unmarshal data", zap.String("path", source.filePath), zap.Error(err))
		return nil, fmt.Errorf("decode %s: %w", source.filePath, err)
	}

	dataset, err := storage.NewDatasetFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source.filePath, err)
	}

	logger.Log.Info("Read data from file",
		zap.String("path", source.filePath),
		zap.Int("users", len(doc.Users)),
		zap.Int("posts", len(doc.Posts)),
		zap.Int("comments", len(doc.Comments)),
		zap.Int("todos", len(doc.Todos)),
		zap.Int("albums", len(doc.Albums)),
	)
	return dataset, nil
}

// Ping проверяет, что файл всё ещё доступен для чтения.
func (source *FileSource) Ping(_ context.Context) error {
	_, err := os.Stat(source.filePath)
	return err
}

func (source *FileSource) Close() error {
	return nil
}

// Save записывает набор данных в файл в формате db.json.
func Save(filePath string, dataset *storage.Dataset) error {
	data, err := json.MarshalIndent(dataset.Document(), "", "  ")
	if err != nil {
		logger.Log.Error("Failed to marshal data", zap.Error(err))
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		logger.Log.Error("Failed to write to file", zap.String("path", filePath), zap.Error(err))
		return err
	}
	logger.Log.Info("Write data to file", zap.String("path", filePath))
	return nil
}
