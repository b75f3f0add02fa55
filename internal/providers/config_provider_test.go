package providers

import (
	"os"
	"path/filepath"
	"profiled/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
webServer:
  host: 127.0.0.1
  port: 8090
persistence:
  filePath: /tmp/profiled.dat
  saveInterval: 30s
logger:
  level: info
  mode: 0644
  dir: /tmp
storage:
  driver: memory
history:
  defaultWindow: 1 week
cache:
  enabled: true
  size: 16
metrics:
  enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigProvider_LoadsYaml(t *testing.T) {
	path := writeConfig(t, testConfigYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "ProfileHistoryDaemon", conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, 30*time.Second, conf.Persistence.SaveInterval)
	assert.Equal(t, "memory", conf.Storage.Driver)
	assert.Equal(t, "1 week", conf.History.DefaultWindow)
	assert.True(t, conf.Cache.Enabled)
	assert.Equal(t, 16, conf.Cache.Size)
	assert.True(t, conf.Metrics.Enabled)
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, testConfigYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, defaultFetchTimeout, conf.History.FetchTimeout)
	assert.Equal(t, defaultLang, conf.History.DefaultLang)
	assert.Equal(t, defaultCacheTTL, conf.Cache.TTL)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeConfig(t, testConfigYaml)
	t.Setenv("PROFILED_STORAGE_DRIVER", "sqlite")
	t.Setenv("PROFILED_STORAGE_PATH", "/tmp/profiled.db")
	t.Setenv("PROFILED_DEFAULT_LANG", "de")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, "/tmp/profiled.db", conf.Storage.Path)
	assert.Equal(t, "de", conf.History.DefaultLang)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
webServer:
  host: 127.0.0.1
logger:
  level: loud
`)
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
