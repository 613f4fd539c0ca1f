package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theheadmen/jsonmock/internal/placeholder"
	"github.com/theheadmen/jsonmock/internal/serverapi"
	config "github.com/theheadmen/jsonmock/internal/serverconfig"
	"github.com/theheadmen/jsonmock/internal/storage/file"
	"github.com/theheadmen/jsonmock/internal/storage/memory"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{"CONFIG", "SERVER_ADDRESS", "LOG_LEVEL", "DATASET_FILE", "DATABASE_DSN", "GRPC_ADDRESS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(name, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	clearEnv(t)
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mockServer(t *testing.T) *httptest.Server {
	source := memory.NewSource()
	dataset, err := source.Load(context.Background())
	require.NoError(t, err)
	ts := httptest.NewServer(serverapi.MakeChiServ(source, dataset))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckCommand(t *testing.T) {
	ts := mockServer(t)

	out, err := execute(t, "check", "--base-url", ts.URL, "-l", "error")
	require.NoError(t, err)
	assert.Equal(t, "users    3 ok\nposts    4 ok\ncomments 3 ok\ntodos    4 ok\nalbums   3 ok\n", out)
}

func TestCheckCommandFailsOnBadShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// у пользователя нет email
		io.WriteString(w, `[{"id":1,"name":"João Silva","username":"joao123"}]`)
	}))
	defer ts.Close()

	out, err := execute(t, "check", "--base-url", ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check users")
	assert.Contains(t, err.Error(), "email")
	assert.Empty(t, out)
}

func TestExportCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "db.json")

	out, err := execute(t, "export", "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "exported memory dataset to "+output+"\n", out)

	dataset, err := file.NewFileSource(output).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, memory.Fixture(), dataset.Document())

	// экспорт из файла в другой файл
	second := filepath.Join(t.TempDir(), "copy.json")
	out, err = execute(t, "export", "-f", output, "--output", second)
	require.NoError(t, err)
	assert.Equal(t, "exported file dataset to "+second+"\n", out)
}

func TestSeedCommandRequiresDatabase(t *testing.T) {
	_, err := execute(t, "seed")
	assert.ErrorIs(t, err, errNoDatabase)
}

func TestConfigErrorStopsCommand(t *testing.T) {
	_, err := execute(t, "export", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "serve", "-l", "loud")
	assert.Error(t, err)
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		configStore config.ConfigStore
		wantType    any
		wantErr     bool
	}{
		{name: "fixture", configStore: config.ConfigStore{}, wantType: &memory.Source{}},
		{name: "file", configStore: config.ConfigStore{FlagFile: "db.json"}, wantType: &file.FileSource{}},
		{name: "unreachable database", configStore: config.ConfigStore{FlagFile: "db.json", FlagDB: "host=127.0.0.1 port=1 sslmode=disable connect_timeout=1"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := openSource(ctx, &tt.configStore)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, source)
			assert.NoError(t, source.Close())
		})
	}
}

func TestServeUntilCancelled(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	configStore := config.NewConfigStore()
	configStore.FlagShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, configStore, listener)
	}()

	client := placeholder.NewClient("http://" + listener.Addr().String())
	require.Eventually(t, func() bool {
		users, err := client.AllUsers(context.Background())
		return err == nil && len(users) == 3
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServeFailsOnBadDataset(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	configStore := config.NewConfigStore()
	configStore.FlagFile = filepath.Join(t.TempDir(), "missing.json")

	err = serve(context.Background(), configStore, listener)
	assert.Error(t, err)
}
