package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)

	cfg := InitConfig(path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again := LoadConfig(path)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, `
[server]
default_limit = 5
default_method = "trie"
http_addr = ":8080"
allowed_origins = ["http://localhost:3000"]

[dict]
path = "/srv/words.txt"
persist = false
locale = "sv"
`)
	cfg := LoadConfig(path)
	assert.Equal(t, 5, cfg.Server.DefaultLimit)
	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.Equal(t, "trie", cfg.Server.DefaultMethod)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/srv/words.txt", cfg.Dict.Path)
	assert.False(t, cfg.Dict.Persist)
	assert.Equal(t, language.Swedish, cfg.LocaleTag())
	assert.Equal(t, 10, cfg.CLI.DefaultLimit)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_limit has the wrong type, so the typed decode fails as a whole
	path := writeFile(t, `
[server]
max_limit = "lots"
default_limit = 7

[dict]
persist = false
`)
	cfg := LoadConfig(path)
	assert.Equal(t, 7, cfg.Server.DefaultLimit)
	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.False(t, cfg.Dict.Persist)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeFile(t, "this is [ not toml")
	assert.Equal(t, DefaultConfig(), LoadConfig(path))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 0
	cfg.Server.DefaultLimit = 500
	cfg.Server.MaxWordLen = -1
	cfg.Server.DefaultMethod = "btree"
	cfg.Dict.Path = ""
	cfg.Dict.Locale = "not a locale!"
	cfg.CLI.DefaultLimit = 0

	cfg.Validate()
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidateKeepsHashmapMethod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.DefaultMethod = "hashmap"
	cfg.Validate()
	assert.Equal(t, "hashmap", cfg.Server.DefaultMethod)
}

func TestLoadConfigWithPriority(t *testing.T) {
	custom := writeFile(t, "[cli]\ndefault_limit = 3\n")
	cfg, path := LoadConfigWithPriority(custom, "")
	assert.Equal(t, custom, path)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)

	def := filepath.Join(t.TempDir(), FileName)
	cfg, path = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"), def)
	assert.Equal(t, def, path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, def)

	cfg, path = LoadConfigWithPriority("", "")
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}
