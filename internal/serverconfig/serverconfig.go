// Package config содержит определения структур используемых в приложении для конфигурации
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	flagRunAddrDef         = ":8080"
	flagLogLevelDef        = "info"
	flagShutdownTimeoutDef = 5 * time.Second
)

// Источник данных, который выбирается по заполненным флагам.
const (
	SourceMemory   = "memory"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// ConfigStore структура с всеми используемыми флагами
type ConfigStore struct {
	FlagRunAddr         string        `yaml:"server_address"`
	FlagLogLevel        string        `yaml:"log_level"`
	FlagFile            string        `yaml:"dataset_file"`
	FlagDB              string        `yaml:"database_dsn"`
	FlagGRPCAddr        string        `yaml:"grpc_address"`
	FlagShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	FlagConfig          string        `yaml:"-"`
}

// NewConfigStore возвращает ConfigStore со значениями по умолчанию
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		FlagRunAddr:         flagRunAddrDef,
		FlagLogLevel:        flagLogLevelDef,
		FlagFile:            "",
		FlagDB:              "",
		FlagGRPCAddr:        "",
		FlagShutdownTimeout: flagShutdownTimeoutDef,
		FlagConfig:          "",
	}
}

// RegisterFlags регистрирует флаги сервера в переданном наборе флагов
func (configStore *ConfigStore) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&configStore.FlagRunAddr, "address", "a", flagRunAddrDef, "address and port to run server")
	flags.StringVarP(&configStore.FlagLogLevel, "log-level", "l", flagLogLevelDef, "log level")
	flags.StringVarP(&configStore.FlagFile, "file", "f", "", "db.json file with the dataset to serve")
	flags.StringVarP(&configStore.FlagDB, "database-dsn", "d", "", "params to connect with DB holding the dataset")
	flags.StringVarP(&configStore.FlagGRPCAddr, "grpc-address", "g", "", "address for the gRPC health service, empty to disable")
	flags.DurationVar(&configStore.FlagShutdownTimeout, "shutdown-timeout", flagShutdownTimeoutDef, "graceful shutdown timeout")
	flags.StringVarP(&configStore.FlagConfig, "config", "c", "", "path to config file (YAML or JSON)")
}

// readConfigFile читает файл конфигурации и возвращает временный конфиг
func (configStore *ConfigStore) readConfigFile() (*ConfigStore, error) {
	data, err := os.ReadFile(configStore.FlagConfig)
	if err != nil {
		return nil, err
	}

	tempConfig := &ConfigStore{}
	if err := yaml.Unmarshal(data, tempConfig); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configStore.FlagConfig, err)
	}

	return tempConfig, nil
}

// Resolve вызывается после разбора флагов. Приоритет значений:
// значения по умолчанию < файл конфигурации < явно заданные флаги < переменные окружения.
func (configStore *ConfigStore) Resolve(flags *pflag.FlagSet) error {
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		configStore.FlagConfig = envConfig
	}

	// Проверяем наличие файла конфигурации и читаем его
	if configStore.FlagConfig != "" {
		tempConfig, err := configStore.readConfigFile()
		if err != nil {
			return err
		}
		// если какое-то значение не было выставлено как флаг - используем значение из конфига-файла
		if !flags.Changed("address") && tempConfig.FlagRunAddr != "" {
			configStore.FlagRunAddr = tempConfig.FlagRunAddr
		}
		if !flags.Changed("log-level") && tempConfig.FlagLogLevel != "" {
			configStore.FlagLogLevel = tempConfig.FlagLogLevel
		}
		if !flags.Changed("file") && tempConfig.FlagFile != "" {
			configStore.FlagFile = tempConfig.FlagFile
		}
		if !flags.Changed("database-dsn") && tempConfig.FlagDB != "" {
			configStore.FlagDB = tempConfig.FlagDB
		}
		if !flags.Changed("grpc-address") && tempConfig.FlagGRPCAddr != "" {
			configStore.FlagGRPCAddr = tempConfig.FlagGRPCAddr
		}
		if !flags.Changed("shutdown-timeout") && tempConfig.FlagShutdownTimeout != 0 {
			configStore.FlagShutdownTimeout = tempConfig.FlagShutdownTimeout
		}
	}

	// а затем в любом случае смотрим еще и переменные окружения
	if envRunAddr := os.Getenv("SERVER_ADDRESS"); envRunAddr != "" {
		configStore.FlagRunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		configStore.FlagLogLevel = envLogLevel
	}

	if envFile := os.Getenv("DATASET_FILE"); envFile != "" {
		configStore.FlagFile = envFile
	}

	if envDB := os.Getenv("DATABASE_DSN"); envDB != "" {
		configStore.FlagDB = envDB
	}

	if envGRPCAddr := os.Getenv("GRPC_ADDRESS"); envGRPCAddr != "" {
		configStore.FlagGRPCAddr = envGRPCAddr
	}

	if envTimeout := os.Getenv("SHUTDOWN_TIMEOUT"); envTimeout != "" {
		timeout, err := time.ParseDuration(envTimeout)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		configStore.FlagShutdownTimeout = timeout
	}

	return nil
}

// SourceKind возвращает тип источника данных: база данных важнее файла,
// без обоих используется встроенный набор.
func (configStore *ConfigStore) SourceKind() string {
	switch {
	case configStore.FlagDB != "":
		return SourceDatabase
	case configStore.FlagFile != "":
		return SourceFile
	default:
		return SourceMemory
	}
}
