package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`
	Storage struct {
		Driver string `koanf:"driver"`
	} `koanf:"storage"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_LoadFile_FromYAML(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\nstorage:\n  driver: memory\n")

	cfg, err := LoadFile[*testConfig]("loadertest", path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func Test_LoadFile_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\nstorage:\n  driver: memory\n")
	t.Setenv("LOADERTEST_SERVER_PORT", "9090")
	t.Setenv("LOADERTEST_STORAGE_DRIVER", "sqlite")

	cfg, err := LoadFile[*testConfig]("loadertest", path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
}

func Test_LoadFile_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("LOADERTEST_SERVER_PORT", "7070")

	cfg, err := LoadFile[*testConfig]("loadertest", filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func Test_LoadFile_ValidationError(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: memory\n")

	_, err := LoadFile[*testConfig]("loadertest", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is required")
}

func Test_Load_UsesConfigFileEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 6060\n")
	t.Setenv("LOADERTEST_CONFIG_FILE", path)

	cfg, err := Load[*testConfig]("loadertest")

	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}
