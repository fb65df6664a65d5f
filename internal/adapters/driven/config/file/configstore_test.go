package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".replybot", "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", "127.0.0.1:8000"))
	require.NoError(t, store.Set("server.burst", 10))
	require.NoError(t, store.Set("server.rate_limit", 2.5))
	require.NoError(t, store.Set("server.allowed_origins", []string{"http://localhost:3000"}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("server.addr"), "127.0.0.1:8000"},
		{"int", store.GetInt("server.burst"), 10},
		{"float", store.GetFloat("server.rate_limit"), 2.5},
		{"int as float", store.GetFloat("server.burst"), 10.0},
		{"slice", store.GetStringSlice("server.allowed_origins"), []string{"http://localhost:3000"}},
		{"missing string", store.GetString("missing"), ""},
		{"missing int", store.GetInt("missing"), 0},
		{"missing float", store.GetFloat("missing"), 0.0},
		{"wrong type string", store.GetString("server.burst"), ""},
		{"wrong type int", store.GetInt("server.addr"), 0},
		{"wrong type float", store.GetFloat("server.addr"), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Nil(t, store.GetStringSlice("server.addr"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", "localhost:9000"))
	require.NoError(t, store.Set("server.burst", 4))
	require.NoError(t, store.Set("server.rate_limit", 1.5))
	require.NoError(t, store.Set("server.allowed_origins", []string{"https://a.example", "https://b.example"}))
	require.NoError(t, store.Set("vectoriser.norm", "l2"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", reloaded.GetString("server.addr"))
	assert.Equal(t, 4, reloaded.GetInt("server.burst"))
	assert.InDelta(t, 1.5, reloaded.GetFloat("server.rate_limit"), 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, reloaded.GetStringSlice("server.allowed_origins"))
	assert.Equal(t, "l2", reloaded.GetString("vectoriser.norm"))
	assert.Equal(t, []string{
		"server.addr",
		"server.allowed_origins",
		"server.burst",
		"server.rate_limit",
		"vectoriser.norm",
	}, reloaded.Keys())
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("corpus.path", "train_data.csv"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[corpus]")
	assert.NotContains(t, string(data), "corpus.path")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[server]
addr = "0.0.0.0:8080"
rate_limit = 5
allowed_origins = ["http://localhost:3000", "http://localhost:5173"]

[analysis]
min_term_length = 2
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", store.GetString("server.addr"))
	assert.InDelta(t, 5.0, store.GetFloat("server.rate_limit"), 1e-9)
	assert.Equal(t, 2, store.GetInt("analysis.min_term_length"))
	assert.Len(t, store.GetStringSlice("server.allowed_origins"), 2)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("corpus.source", "csv"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(""), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Set_UnmarshallableValueRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("server.addr", "localhost:1"))

	err = store.Set("server.addr", make(chan int))
	assert.Error(t, err)
	assert.Equal(t, "localhost:1", store.GetString("server.addr"))

	err = store.Set("server.other", make(chan int))
	assert.Error(t, err)
	_, ok := store.Get("server.other")
	assert.False(t, ok)
}

func TestConfigStore_Set_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("server.addr", "localhost:1"))

	// Replace the file with a directory so the write fails.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("server.addr", "localhost:2"))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("corpus.path", "data.csv"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("server.burst", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("server.burst")
		}()
	}
	wg.Wait()

	_, ok := store.Get("server.burst")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": "x",
		"top":   true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": 2},
		"c":   map[string]any{"d": map[string]any{"e": "x"}},
		"top": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b": 2, "c.d.e": "x", "top": true}, flattenMap(nested, ""))
}
