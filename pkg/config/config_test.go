package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/serdebench/pkg/codec"
	"github.com/ssargent/serdebench/pkg/generator"
	"github.com/ssargent/serdebench/pkg/stream"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "msgpack", config.Benchmark.Codec)
	assert.Equal(t, 10000, config.Benchmark.Records)
	assert.Equal(t, 1, config.Benchmark.Attempts)
	assert.Equal(t, 64000, config.Benchmark.ChunkSize)
	assert.Equal(t, "fixed", config.Benchmark.Dataset)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Empty(t, config.Metrics.Addr)

	assert.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("every codec is accepted", func(t *testing.T) {
		for _, kind := range codec.Kinds() {
			config := DefaultConfig()
			config.Benchmark.Codec = string(kind)
			assert.NoError(t, config.Validate())
		}
	})

	t.Run("zero records is allowed", func(t *testing.T) {
		config := DefaultConfig()
		config.Benchmark.Records = 0
		assert.NoError(t, config.Validate())
	})

	t.Run("all problems are reported", func(t *testing.T) {
		config := &Config{
			Benchmark: Benchmark{
				Codec:     "xml",
				Records:   -1,
				Attempts:  0,
				ChunkSize: 0,
				Dataset:   "random",
			},
			Logging: Logging{Level: "loud"},
		}

		err := config.Validate()
		require.Error(t, err)

		merr, ok := err.(*multierror.Error)
		require.True(t, ok)
		assert.Len(t, merr.Errors, 6)

		assert.ErrorIs(t, err, codec.ErrUnknownCodec)
		assert.ErrorIs(t, err, stream.ErrInvalidChunkSize)
		assert.ErrorIs(t, err, generator.ErrUnknownDataset)
		assert.Contains(t, err.Error(), "benchmark.attempts")
		assert.Contains(t, err.Error(), "benchmark.records")
		assert.Contains(t, err.Error(), "logging.level")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "serdebench_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		expectedConfig := &Config{
			Benchmark: Benchmark{
				Codec:     "csv",
				Records:   500,
				Attempts:  3,
				ChunkSize: 1024,
				Dataset:   "varied",
				Seed:      99,
			},
			Logging: Logging{
				Level: "debug",
			},
			Metrics: Metrics{
				Addr: "127.0.0.1:9464",
			},
		}

		err = SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "serdebench_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		err = os.WriteFile(configPath, []byte("benchmark:\n  codec: json\n"), 0600)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)

		expected := DefaultConfig()
		expected.Benchmark.Codec = "json"
		assert.Equal(t, expected, loadedConfig)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "serdebench_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "invalid.yaml")
		err = os.WriteFile(configPath, []byte("benchmark: [unclosed"), 0600)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "serdebench_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "nested", "config.yaml")
	config := DefaultConfig()

	err = SaveConfig(config, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "serdebench")
}

func TestConfigExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "serdebench_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	err = os.WriteFile(existingPath, []byte("test"), 0644)
	require.NoError(t, err)

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	tmpDir, err := os.MkdirTemp("", "serdebench_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	// a regular file where a directory is needed
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	invalidPath := filepath.Join(blocker, "sub", "config.yaml")

	err = SaveConfig(config, invalidPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}
