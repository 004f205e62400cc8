package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultPort         = 3000
	DefaultOllamaAPIURL = "http://localhost:11434/api/generate"
	DefaultOllamaModel  = "gemma"
	DefaultTemperature  = 0.7
	DefaultLogLevel     = "info"

	EnvOllamaAPIURL = "OLLAMA_API_URL"
	EnvLogLevel     = "LOG_LEVEL"
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Ollama  OllamaConfig  `yaml:"ollama"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// OllamaConfig configures calls to the generate endpoint.
type OllamaConfig struct {
	// APIURL is the full generate URL. OLLAMA_API_URL takes precedence.
	APIURL      string  `yaml:"api_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`

	// Timeout of 0 leaves the call unbounded.
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads .env and config.yaml from dir, then applies environment
// overrides and defaults. A missing config.yaml is fine; a malformed one is not.
func Load(dir string) (AppConfig, error) {
	// load environment variables
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	var c AppConfig
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("config: parse %s: %w", CONFIG_FILE, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return AppConfig{}, fmt.Errorf("config: read %s: %w", CONFIG_FILE, err)
	}

	c.applyEnv()
	c.applyDefaults()
	return c, nil
}

func (c *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvOllamaAPIURL)); v != "" {
		c.Ollama.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = DefaultPort
	}
	if c.Ollama.APIURL == "" {
		c.Ollama.APIURL = DefaultOllamaAPIURL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = DefaultOllamaModel
	}
	if c.Ollama.Temperature <= 0 {
		c.Ollama.Temperature = DefaultTemperature
	}
	if c.Ollama.Timeout < 0 {
		c.Ollama.Timeout = 0
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// GetBasePath walks up from the working directory to the first directory
// holding config.yaml. It returns "" when there is none.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
