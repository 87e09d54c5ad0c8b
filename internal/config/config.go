package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shorty-labs/assetkit/internal/branding"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyMinifierPath = "minifier_path"
	KeyCompilerPath = "compiler_path"
	KeyBackend      = "backend"
	KeyOnFailure    = "on_failure"
	KeyLogLevel     = "log_level"
	KeyMinify       = "minify"
)

// MinifyEnv is the environment variable that toggles minified style output.
const MinifyEnv = "MINIFY"

// Keys lists every recognised setting, for `config get/set` validation.
var Keys = []string{KeyMinifierPath, KeyCompilerPath, KeyBackend, KeyOnFailure, KeyLogLevel, KeyMinify}

// Settings is the resolved configuration handed to the commands.
type Settings struct {
	MinifierPath string
	CompilerPath string
	Backend      string
	OnFailure    string
	LogLevel     string
	// Minify is the raw MINIFY value; style.MinifyEnabled interprets it.
	Minify string
}

// Dir returns the path to the config directory (~/.assetkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.assetkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	_ = viper.BindEnv(KeyMinify, MinifyEnv)

	viper.SetDefault(KeyBackend, "exec")
	viper.SetDefault(KeyOnFailure, "continue")
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Resolve returns the current settings. Load must have been called.
func Resolve() Settings {
	return Settings{
		MinifierPath: viper.GetString(KeyMinifierPath),
		CompilerPath: viper.GetString(KeyCompilerPath),
		Backend:      viper.GetString(KeyBackend),
		OnFailure:    viper.GetString(KeyOnFailure),
		LogLevel:     viper.GetString(KeyLogLevel),
		Minify:       minifyValue(),
	}
}

// minifyValue returns the minify setting as written. YAML decodes an
// unquoted TRUE or True in the config file as a bool, which GetString would
// render as "true"; the file's literal scalar is used instead.
func minifyValue() string {
	if _, ok := viper.Get(KeyMinify).(bool); ok {
		if raw, found := rawScalar(viper.ConfigFileUsed(), KeyMinify); found {
			return raw
		}
	}
	return viper.GetString(KeyMinify)
}

// rawScalar returns the source text of a top-level scalar in a YAML file.
func rawScalar(path, key string) (string, bool) {
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return "", false
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key && m.Content[i+1].Kind == yaml.ScalarNode {
			return m.Content[i+1].Value, true
		}
	}
	return "", false
}

// IsKey reports whether key is a recognised setting.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
