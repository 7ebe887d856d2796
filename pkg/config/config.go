/*
Package config manages the TOML config for wordtree.

	[server]
	default_limit = 10
	max_limit = 64
	max_word_len = 256
	default_method = "bst"
	http_addr = ""
	allowed_origins = ["*"]

	[dict]
	path = "dictionary.txt"
	persist = true
	locale = "en"

	[cli]
	default_limit = 10
	no_filter = false
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// FileName is the config file looked up in the config directory.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has options shared by the IPC and HTTP transports.
type ServerConfig struct {
	DefaultLimit   int      `toml:"default_limit"`
	MaxLimit       int      `toml:"max_limit"`
	MaxWordLen     int      `toml:"max_word_len"`
	DefaultMethod  string   `toml:"default_method"`
	HTTPAddr       string   `toml:"http_addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DictConfig holds word list options.
type DictConfig struct {
	Path    string `toml:"path"`
	Persist bool   `toml:"persist"`
	Locale  string `toml:"locale"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	NoFilter     bool `toml:"no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			DefaultLimit:   10,
			MaxLimit:       64,
			MaxWordLen:     256,
			DefaultMethod:  "bst",
			HTTPAddr:       "",
			AllowedOrigins: []string{"*"},
		},
		Dict: DictConfig{
			Path:    "dictionary.txt",
			Persist: true,
			Locale:  "en",
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			NoFilter:     false,
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. defaultPath, created with defaults when missing
// 3. Builtin defaults
func LoadConfigWithPriority(customPath, defaultPath string) (*Config, string) {
	if customPath != "" {
		if utils.FileExists(customPath) {
			return LoadConfig(customPath), customPath
		}
		log.Warnf("Custom config file not found at %s. Trying default path...", customPath)
	}
	if defaultPath == "" {
		return DefaultConfig(), ""
	}
	return InitConfig(defaultPath), defaultPath
}

// InitConfig loads config from file or creates default if missing.
// Any failure falls back to builtin defaults.
func InitConfig(configPath string) *Config {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig()
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig()
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, recovering whatever sections parse
// when the file as a whole does not.
func LoadConfig(configPath string) *Config {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	config.Validate()
	return config
}

// tryPartialParse attempts to parse a TOML file section by section
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
	if val, ok := utils.ExtractString(data, "default_method"); ok {
		server.DefaultMethod = val
	}
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		server.HTTPAddr = val
	}
	if val, ok := utils.ExtractStringSlice(data, "allowed_origins"); ok {
		server.AllowedOrigins = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractBool(data, "persist"); ok {
		dict.Persist = val
	}
	if val, ok := utils.ExtractString(data, "locale"); ok {
		dict.Locale = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// Validate replaces out of range values with their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Server.MaxLimit <= 0 {
		log.Warnf("Invalid max_limit %d, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.DefaultLimit <= 0 || c.Server.DefaultLimit > c.Server.MaxLimit {
		log.Warnf("Invalid default_limit %d, using %d", c.Server.DefaultLimit, min(def.Server.DefaultLimit, c.Server.MaxLimit))
		c.Server.DefaultLimit = min(def.Server.DefaultLimit, c.Server.MaxLimit)
	}
	if c.Server.MaxWordLen <= 0 {
		c.Server.MaxWordLen = def.Server.MaxWordLen
	}
	switch c.Server.DefaultMethod {
	case "bst", "trie", "hashmap":
	default:
		log.Warnf("Unknown default_method %q, using %q", c.Server.DefaultMethod, def.Server.DefaultMethod)
		c.Server.DefaultMethod = def.Server.DefaultMethod
	}
	if c.Dict.Path == "" {
		c.Dict.Path = def.Dict.Path
	}
	if _, err := language.Parse(c.Dict.Locale); err != nil {
		log.Warnf("Invalid locale %q: %v. Using %q", c.Dict.Locale, err, def.Dict.Locale)
		c.Dict.Locale = def.Dict.Locale
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// LocaleTag returns the collation language for the dictionary.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Dict.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
