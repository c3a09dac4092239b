package splitter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/erraggy/oasplit/internal/fileutil"
	"github.com/erraggy/oasplit/oaserrors"
	"github.com/erraggy/oasplit/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		category string
		ext      string
		want     string
	}{
		{category: "TraceManagement", ext: ".yml", want: "trace-management.yml"},
		{category: "Users", ext: ".yml", want: "users.yml"},
		{category: "scoreConfigs", ext: ".yml", want: "score-configs.yml"},
		{category: "LLMConnections", ext: ".yml", want: "llmconnections.yml"},
		{category: "Admin Tools", ext: ".json", want: "admin tools.json"},
		{category: "ÜberSicht", ext: ".yml", want: "über-sicht.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := FileName(tt.category, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName_Unsafe(t *testing.T) {
	for _, category := range []string{"", ".", "..", "../x", "a/b", `a\b`, "a\x00b"} {
		_, err := FileName(category, ".yml")
		require.Error(t, err, "%q", category)
		assert.ErrorIs(t, err, oaserrors.ErrPathTraversal)
	}
}

func TestMarshal_NoDocument(t *testing.T) {
	_, err := Marshal(&Category{Name: "X"}, FormatYAML)
	assert.Error(t, err)
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(data)
	}
	return files
}

func TestWriteResult_UsersAndOrders(t *testing.T) {
	s := New(DefaultConfig())
	result, err := s.Split(loadFixture(t, "users-orders.yaml"))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "nested", "openapi-split")
	written, err := s.WriteResult(context.Background(), result, dir)
	require.NoError(t, err)

	require.Len(t, written, 2)
	assert.Equal(t, WrittenFile{
		Category:       "Users",
		Path:           filepath.Join(dir, "users.yml"),
		Size:           written[0].Size,
		PathCount:      2,
		OperationCount: 3,
		SchemaCount:    2,
	}, written[0])
	assert.Positive(t, written[0].Size)

	files := readDir(t, dir)
	assert.Len(t, files, 2)

	users, err := parser.New().ParseBytes([]byte(files["users.yml"]))
	require.NoError(t, err)
	assert.Equal(t, parser.DocumentStats{PathCount: 2, OperationCount: 3, SchemaCount: 2}, users.Stats)

	orders := files["orders.yml"]
	assert.NotContains(t, orders, "components")
	assert.Contains(t, orders, "title: Shop API - Orders\n")
	assert.Less(t, strings.Index(orders, "openapi:"), strings.Index(orders, "info:"))
	assert.Less(t, strings.Index(orders, "info:"), strings.Index(orders, "paths:"))

	info, err := os.Stat(filepath.Join(dir, "users.yml"))
	require.NoError(t, err)
	assert.Equal(t, fileutil.OwnerReadWrite, info.Mode().Perm())
}

func TestWriteResult_Idempotent(t *testing.T) {
	s := New(DefaultConfig())
	dir := t.TempDir()

	result, err := s.Split(loadFixture(t, "mixed.yaml"))
	require.NoError(t, err)
	_, err = s.WriteResult(context.Background(), result, dir)
	require.NoError(t, err)
	first := readDir(t, dir)

	result, err = s.Split(loadFixture(t, "mixed.yaml"))
	require.NoError(t, err)
	_, err = s.WriteResult(context.Background(), result, dir)
	require.NoError(t, err)

	assert.Equal(t, first, readDir(t, dir))
}

func TestWriteResult_ConcurrencyDoesNotChangeOutput(t *testing.T) {
	src := loadFixture(t, "mixed.yaml")

	write := func(concurrency int) map[string]string {
		cfg := DefaultConfig()
		cfg.Concurrency = concurrency
		s := New(cfg)
		result, err := s.Split(src)
		require.NoError(t, err)
		dir := t.TempDir()
		_, err = s.WriteResult(context.Background(), result, dir)
		require.NoError(t, err)
		return readDir(t, dir)
	}

	assert.Equal(t, write(1), write(4))
}

func TestWriteResult_Handler(t *testing.T) {
	var (
		mu    sync.Mutex
		names []string
	)
	cfg := DefaultConfig()
	cfg.Concurrency = 3
	cfg.WriteHandler = func(f WrittenFile) {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, filepath.Base(f.Path))
	}
	s := New(cfg)

	result, err := s.Split(loadFixture(t, "mixed.yaml"))
	require.NoError(t, err)
	written, err := s.WriteResult(context.Background(), result, t.TempDir())
	require.NoError(t, err)

	sort.Strings(names)
	assert.Equal(t, []string{"admin.yml", "trace-management.yml", "users.yml"}, names)
	assert.Equal(t, "Admin", written[0].Category, "results keep category order")
}

func TestWriteResult_JSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	s := New(cfg)

	result, err := s.Split(loadFixture(t, "mixed.yaml"))
	require.NoError(t, err)
	dir := t.TempDir()
	_, err = s.WriteResult(context.Background(), result, dir)
	require.NoError(t, err)

	files := readDir(t, dir)
	require.Contains(t, files, "users.json")

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(files["users.json"]), &doc))
	assert.Equal(t, "Trace Platform - Users", doc["info"].(map[string]any)["title"])
	assert.Contains(t, files["users.json"], "Café ☕ – 概要")
}

func TestWriteResult_RefusesSymlink(t *testing.T) {
	s := New(DefaultConfig())
	result, err := s.Split(loadFixture(t, "users-orders.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "elsewhere.yml")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o600))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "users.yml")))

	_, err = s.WriteResult(context.Background(), result, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrWrite)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestWriteResult_OutputDirIsFile(t *testing.T) {
	s := New(DefaultConfig())
	result, err := s.Split(loadFixture(t, "users-orders.yaml"))
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err = s.WriteResult(context.Background(), result, file)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrWrite)
}

func TestWriteResult_EarlierFilesSurviveFailure(t *testing.T) {
	s := New(DefaultConfig())
	result, err := s.Split(loadFixture(t, "users-orders.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	// a directory where orders.yml should go makes the second write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "orders.yml"), 0o755))

	_, err = s.WriteResult(context.Background(), result, dir)
	require.Error(t, err)

	var we *oaserrors.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "Orders", we.Category)

	_, err = os.Stat(filepath.Join(dir, "users.yml"))
	assert.NoError(t, err)
}

func TestWriteResult_CanceledContext(t *testing.T) {
	s := New(DefaultConfig())
	result, err := s.Split(loadFixture(t, "users-orders.yaml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.WriteResult(ctx, result, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
