package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*ConfigStore, *pflag.FlagSet) {
	configStore := NewConfigStore()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	configStore.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return configStore, flags
}

func clearEnv(t *testing.T) {
	for _, name := range []string{"CONFIG", "SERVER_ADDRESS", "LOG_LEVEL", "DATASET_FILE", "DATABASE_DSN", "GRPC_ADDRESS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(name, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	configStore, flags := parse(t)
	require.NoError(t, configStore.Resolve(flags))

	assert.Equal(t, ":8080", configStore.FlagRunAddr)
	assert.Equal(t, "info", configStore.FlagLogLevel)
	assert.Equal(t, 5*time.Second, configStore.FlagShutdownTimeout)
	assert.Equal(t, SourceMemory, configStore.SourceKind())
}

func TestFlags(t *testing.T) {
	clearEnv(t)
	configStore, flags := parse(t, "-a", ":9090", "-l", "debug", "-f", "db.json", "-g", ":9091", "--shutdown-timeout", "1s")
	require.NoError(t, configStore.Resolve(flags))

	assert.Equal(t, ":9090", configStore.FlagRunAddr)
	assert.Equal(t, "debug", configStore.FlagLogLevel)
	assert.Equal(t, "db.json", configStore.FlagFile)
	assert.Equal(t, ":9091", configStore.FlagGRPCAddr)
	assert.Equal(t, time.Second, configStore.FlagShutdownTimeout)
	assert.Equal(t, SourceFile, configStore.SourceKind())
}

func TestConfigFilePrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yamlConfig := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlConfig, []byte("server_address: \":7070\"\nlog_level: warn\ndataset_file: /data/db.json\nshutdown_timeout: 10s\n"), 0644))

	// флаг важнее файла
	configStore, flags := parse(t, "-c", yamlConfig, "-l", "error")
	require.NoError(t, configStore.Resolve(flags))
	assert.Equal(t, ":7070", configStore.FlagRunAddr)
	assert.Equal(t, "error", configStore.FlagLogLevel)
	assert.Equal(t, "/data/db.json", configStore.FlagFile)
	assert.Equal(t, 10*time.Second, configStore.FlagShutdownTimeout)

	// JSON тоже читается
	jsonConfig := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonConfig, []byte(`{"server_address": ":6060", "database_dsn": "host=db"}`), 0644))
	configStore, flags = parse(t, "--config", jsonConfig)
	require.NoError(t, configStore.Resolve(flags))
	assert.Equal(t, ":6060", configStore.FlagRunAddr)
	assert.Equal(t, SourceDatabase, configStore.SourceKind())

	// переменные окружения важнее всего
	t.Setenv("CONFIG", yamlConfig)
	t.Setenv("SERVER_ADDRESS", ":5050")
	t.Setenv("SHUTDOWN_TIMEOUT", "250ms")
	configStore, flags = parse(t, "-a", ":1111")
	require.NoError(t, configStore.Resolve(flags))
	assert.Equal(t, ":5050", configStore.FlagRunAddr)
	assert.Equal(t, "warn", configStore.FlagLogLevel)
	assert.Equal(t, 250*time.Millisecond, configStore.FlagShutdownTimeout)
}

func TestResolveErrors(t *testing.T) {
	clearEnv(t)

	configStore, flags := parse(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, configStore.Resolve(flags))

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("server_address: [unclosed"), 0644))
	configStore, flags = parse(t, "-c", broken)
	assert.Error(t, configStore.Resolve(flags))

	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	configStore, flags = parse(t)
	assert.Error(t, configStore.Resolve(flags))
}
