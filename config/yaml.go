package config

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var _ IConfig = (*YamlConfig)(nil)

// APIKeyEnvVar names the environment variable holding the provider API key.
// The key is deliberately kept out of the YAML file.
const APIKeyEnvVar = "OPENAI_API_KEY"

// YamlConfig implements IConfig with YAML file-based storage.
type YamlConfig struct {
	mu         sync.RWMutex
	configPath string
	logger     *zap.Logger

	serverAddress  string
	serverName     string
	serverVersion  string
	logLevel       string
	allowedOrigins []string
	rateLimitRPM   int
	uploadMaxBytes int64
	llm            LLMSettings

	sslEnabled      bool
	sslMode         string
	sslCertFile     string
	sslKeyFile      string
	sslAcmeDomains  []string
	sslAcmeEmail    string
	sslAcmeCacheDir string
}

// YAML configuration structure matching the documented format
type yamlConfig struct {
	Server struct {
		Address  string `yaml:"address"`
		Name     string `yaml:"name"`
		Version  string `yaml:"version"`
		LogLevel string `yaml:"log_level"`
		SSL      struct {
			Enabled      bool     `yaml:"enabled"`
			Mode         string   `yaml:"mode"`
			CertFile     string   `yaml:"cert_file"`
			KeyFile      string   `yaml:"key_file"`
			AcmeDomains  []string `yaml:"acme_domains"`
			AcmeEmail    string   `yaml:"acme_email"`
			AcmeCacheDir string   `yaml:"acme_cache_dir"`
		} `yaml:"ssl"`
	} `yaml:"server"`

	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	RateLimit struct {
		RPM int `yaml:"rpm"`
	} `yaml:"rate_limit"`

	Upload struct {
		MaxFileSize int64 `yaml:"max_file_size"`
	} `yaml:"upload"`

	LLM struct {
		BaseURL     string   `yaml:"base_url"`
		Model       string   `yaml:"model"`
		Temperature *float64 `yaml:"temperature"`
	} `yaml:"llm"`
}

// NewYamlConfig creates a new YAML-based configuration
func NewYamlConfig(configPath string, logger *zap.Logger) (*YamlConfig, error) {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	config := &YamlConfig{
		configPath: configPath,
		logger:     logger,
	}

	if err := config.load(); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return config, nil
}

func (c *YamlConfig) load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var parsed yamlConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.serverAddress = parsed.Server.Address
	if c.serverAddress == "" {
		c.serverAddress = ":8080"
	}
	c.serverName = parsed.Server.Name
	if c.serverName == "" {
		c.serverName = "vanta"
	}
	c.serverVersion = parsed.Server.Version
	if c.serverVersion == "" {
		c.serverVersion = "0.0.0"
	}
	c.logLevel = parsed.Server.LogLevel
	if c.logLevel == "" {
		c.logLevel = "info"
	}

	c.allowedOrigins = parsed.Cors.AllowedOrigins
	if c.allowedOrigins == nil {
		c.allowedOrigins = []string{}
	}

	c.rateLimitRPM = parsed.RateLimit.RPM
	if c.rateLimitRPM <= 0 {
		c.rateLimitRPM = 60
	}

	c.uploadMaxBytes = parsed.Upload.MaxFileSize
	if c.uploadMaxBytes <= 0 {
		c.uploadMaxBytes = 4 << 20
	}

	c.llm = LLMSettings{
		BaseURL:     parsed.LLM.BaseURL,
		Model:       parsed.LLM.Model,
		Temperature: 0.2,
		APIKey:      os.Getenv(APIKeyEnvVar),
	}
	if c.llm.BaseURL == "" {
		c.llm.BaseURL = "https://api.openai.com/v1"
	}
	if c.llm.Model == "" {
		c.llm.Model = "gpt-4o-mini"
	}
	if parsed.LLM.Temperature != nil {
		c.llm.Temperature = *parsed.LLM.Temperature
	}

	c.sslEnabled = parsed.Server.SSL.Enabled
	c.sslMode = parsed.Server.SSL.Mode
	if c.sslMode == "" {
		c.sslMode = "manual"
	}
	c.sslCertFile = parsed.Server.SSL.CertFile
	c.sslKeyFile = parsed.Server.SSL.KeyFile
	c.sslAcmeDomains = parsed.Server.SSL.AcmeDomains
	c.sslAcmeEmail = parsed.Server.SSL.AcmeEmail
	c.sslAcmeCacheDir = parsed.Server.SSL.AcmeCacheDir
	if c.sslAcmeCacheDir == "" {
		c.sslAcmeCacheDir = "./.autocert-cache"
	}

	c.logger.Debug("Configuration loaded",
		zap.String("path", c.configPath),
		zap.String("address", c.serverAddress),
		zap.Int("rateLimitRPM", c.rateLimitRPM))
	return nil
}

func (c *YamlConfig) ListenAddr() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverAddress, nil
}

func (c *YamlConfig) ServerName() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName, nil
}

func (c *YamlConfig) ServerVersion() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverVersion, nil
}

func (c *YamlConfig) LogLevel() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logLevel, nil
}

func (c *YamlConfig) AllowedOrigins() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.allowedOrigins, nil
}

func (c *YamlConfig) RateLimitRPM() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimitRPM, nil
}

func (c *YamlConfig) UploadMaxBytes() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uploadMaxBytes, nil
}

func (c *YamlConfig) LLM() (LLMSettings, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llm, nil
}

func (c *YamlConfig) SSLEnabled() (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslEnabled, nil
}

func (c *YamlConfig) SSLMode() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslMode, nil
}

func (c *YamlConfig) SSLCertFile() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslCertFile, nil
}

func (c *YamlConfig) SSLKeyFile() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslKeyFile, nil
}

func (c *YamlConfig) SSLAcmeDomains() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslAcmeDomains, nil
}

func (c *YamlConfig) SSLAcmeEmail() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslAcmeEmail, nil
}

func (c *YamlConfig) SSLAcmeCacheDir() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sslAcmeCacheDir, nil
}

func (c *YamlConfig) Status(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, err := os.Stat(c.configPath); err != nil {
		return fmt.Errorf("config file unavailable: %w", err)
	}
	return nil
}

func (c *YamlConfig) Close() error {
	return nil
}
