package xconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		format  Format
	}{
		{"yaml", "c.yaml", "precision: 5\n", FormatYAML},
		{"yml", "c.YML", "precision: 5\n", FormatYAML},
		{"json", "c.json", `{"precision": 5}`, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := New(path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, cfg.Format())
			assert.Equal(t, path, cfg.Path())
			assert.Equal(t, 5, cfg.Client().Int("precision"))
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("")
	require.ErrorIs(t, err, ErrEmptyPath)

	_, err = New("config.toml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrLoadFailed)

	_, err = New(writeFile(t, "bad.json", "{precision"))
	require.ErrorIs(t, err, ErrParseFailed)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte("log:\n  level: debug\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Client().String("log.level"))
	assert.Empty(t, cfg.Path())
	require.ErrorIs(t, cfg.Reload(), ErrNotReloadable)

	empty, err := NewFromBytes(nil, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, empty.Client().Keys())

	_, err = NewFromBytes([]byte("x"), Format("toml"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWithDelimAndTag(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"log":{"level":"error"}}`), FormatJSON, WithDelim("/"), WithTag("json"), nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Client().String("log/level"))

	var target struct {
		Level string `json:"level"`
	}
	require.NoError(t, cfg.Unmarshal("log", &target))
	assert.Equal(t, "error", target.Level)
}

func TestReload(t *testing.T) {
	path := writeFile(t, "c.yaml", "precision: 3\n")
	cfg, err := New(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("precision: 7\n"), 0o600))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, 7, cfg.Client().Int("precision"))

	// 解析失败时保留旧值
	require.NoError(t, os.WriteFile(path, []byte("precision: [\n"), 0o600))
	require.ErrorIs(t, cfg.Reload(), ErrParseFailed)
	assert.Equal(t, 7, cfg.Client().Int("precision"))
}

func TestUnmarshal_Error(t *testing.T) {
	cfg, err := NewFromBytes([]byte("precision: high\n"), FormatYAML)
	require.NoError(t, err)

	var target struct {
		Precision int `koanf:"precision"`
	}
	require.ErrorIs(t, cfg.Unmarshal("", &target), ErrUnmarshalFailed)
}
