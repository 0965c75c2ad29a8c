package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	logconfig "github.com/zkopenid/oidczk/internal/config/log"
)

func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// TestFileLogger_StructuredFields 文件输出为JSON且保留 With 字段
func TestFileLogger_StructuredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "oidczk.log")

	logger, err := NewLoggerFromConfig(DebugLevel, path)
	require.NoError(t, err)

	scoped := logger.With("module", "pipeline", "run_id", "r-1")
	scoped.Infof("encoded %d bytes", 42)
	scoped.Debug("debug line")
	require.NoError(t, logger.Sync())

	entries := readJSONLines(t, path)
	require.Len(t, entries, 2)
	require.Equal(t, "encoded 42 bytes", entries[0]["message"])
	require.Equal(t, "info", entries[0]["level"])
	require.Equal(t, "pipeline", entries[0]["module"])
	require.Equal(t, "r-1", entries[0]["run_id"])
	require.Equal(t, "debug", entries[1]["level"])
}

// TestFileLogger_LevelFilter 低于配置级别的日志被过滤
func TestFileLogger_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")

	logger, err := NewLoggerFromConfig(WarnLevel, path)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	logger.Errorf("kept %s", "too")
	require.NoError(t, logger.Sync())

	entries := readJSONLines(t, path)
	require.Len(t, entries, 2)
	require.Equal(t, "kept", entries[0]["message"])
	require.Equal(t, "kept too", entries[1]["message"])
}

// TestUnknownLevelFallsBackToInfo 未知级别回退到 info
func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	options := logconfig.New(nil).GetOptions()
	options.Level = "verbose"
	cfg := logconfig.NewFromOptions(options)
	require.Equal(t, "info", cfg.GetZapLevel().String())
}

// TestToZapFields_OddArgs 奇数个参数时丢弃最后一个
func TestToZapFields_OddArgs(t *testing.T) {
	fields := toZapFields("a", 1, "b")
	require.Len(t, fields, 1)
	require.Equal(t, "a", fields[0].Key)

	fields = toZapFields(7, "x")
	require.Len(t, fields, 1)
	require.Equal(t, "7", fields[0].Key)
}

// TestGlobalLogger 全局日志记录器可替换
func TestGlobalLogger(t *testing.T) {
	old := GetLogger()
	defer SetLogger(old)

	nop := NewNop()
	SetLogger(nop)
	require.Same(t, nop, GetLogger())

	SetLogger(nil)
	require.Same(t, nop, GetLogger())
}
