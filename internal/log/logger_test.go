package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"renamer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	defer SetDebug(false)

	require.NoError(t, SetLevel("error"))
	l.Warn("quiet")
	assert.Empty(t, buf.String())
	l.Error("loud")
	assert.Contains(t, buf.String(), "loud")

	assert.Error(t, SetLevel("chatty"))
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	child := l.With(F("component", "rename"))
	child.With(F("count", 3)).Info("batch done")
	output = buf.String()
	assert.Contains(t, output, "component=rename")
	assert.Contains(t, output, "count=3")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("pattern", "IMG_")).Info("json message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json message", entry["message"])
	assert.Equal(t, "IMG_", entry["pattern"])
	assert.Contains(t, entry, "timestamp")
}

func TestErrorFields(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect map[string]string
	}{
		{
			name: "file error",
			err:  errors.NewFileError("target already exists", "/photos/b.txt", errors.TargetExists, nil),
			expect: map[string]string{
				"error_kind": "target_exists",
				"path":       "/photos/b.txt",
			},
		},
		{
			name: "pattern error",
			err:  errors.NewPatternError("(", fmt.Errorf("missing closing )")),
			expect: map[string]string{
				"error_kind": "invalid_pattern",
				"pattern":    "(",
			},
		},
		{
			name: "config error",
			err:  errors.NewConfigError("invalid value", "history.backend", errors.InvalidConfig, nil),
			expect: map[string]string{
				"error_kind": "invalid_config",
				"param":      "history.backend",
			},
		},
		{
			name: "history error",
			err:  errors.NewHistoryError("load", fmt.Errorf("corrupt file")),
			expect: map[string]string{
				"error_kind": "history_unavailable",
				"operation":  "load",
			},
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			expect: map[string]string{
				"error":      "boom",
				"error_kind": "unknown",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(WithOutput(&buf), WithJSON())
			l.WithError(tt.err).Error("failed")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			for k, v := range tt.expect {
				assert.Equal(t, v, entry[k], k)
			}
		})
	}
}

func TestPackageLevelLogging(t *testing.T) {
	var buf bytes.Buffer
	old := logger
	defer func() { logger = old }()

	Configure(WithOutput(&buf), WithJSON())

	Info("hello %s", "world")
	assert.Contains(t, buf.String(), "hello world")
	buf.Reset()

	LogWithFields(F("files", 2)).Info("previewed")
	assert.Contains(t, buf.String(), `"files":2`)
	buf.Reset()

	LogError(errors.NewHistoryError("save", fmt.Errorf("read-only")), "could not record")
	assert.Contains(t, buf.String(), "could not record")
	assert.Contains(t, buf.String(), `"operation":"save"`)
	buf.Reset()

	Component("engine").Warn("stale")
	assert.Contains(t, buf.String(), `"component":"engine"`)
}

func TestFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renamer.log")
	var buf bytes.Buffer
	old := logger
	defer func() {
		if logger.file != nil {
			logger.file.Close()
		}
		logger = old
	}()

	Configure(WithOutput(&buf), WithFile(path))
	require.NotNil(t, logger.file)

	Warn("written to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to both"))
	assert.Contains(t, buf.String(), "written to both")
}

func TestWithContextNil(t *testing.T) {
	l := NewLogger()
	//nolint:staticcheck
	assert.Same(t, l, l.WithContext(nil))
}
