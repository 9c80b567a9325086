package config

import (
	"context"
	"sync"
)

var _ IConfig = (*InternalConfig)(nil)

// InternalConfig implements IConfig with in-memory storage.
// Primarily used by tests; fields are exported so tests can set them directly.
type InternalConfig struct {
	mu                   sync.RWMutex
	ServerAddress        string
	ServerNameValue      string
	ServerVersionValue   string
	LogLevelValue        string
	AllowedOriginsValue  []string
	RateLimitRPMValue    int
	UploadMaxBytesValue  int64
	LLMValue             LLMSettings
	SSLEnabledValue      bool
	SSLModeValue         string
	SSLCertFileValue     string
	SSLKeyFileValue      string
	SSLAcmeDomainsValue  []string
	SSLAcmeEmailValue    string
	SSLAcmeCacheDirValue string
}

// NewInternalConfig creates a new in-memory configuration with defaults.
func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		ServerAddress:       ":8080",
		ServerNameValue:     "vanta",
		ServerVersionValue:  "0.0.0",
		LogLevelValue:       "info",
		AllowedOriginsValue: []string{},
		RateLimitRPMValue:   60,
		UploadMaxBytesValue: 4 << 20,
		LLMValue: LLMSettings{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
		},
		SSLModeValue: "manual",
	}
}

func (c *InternalConfig) ListenAddr() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerAddress, nil
}

func (c *InternalConfig) SetListenAddr(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerAddress = addr
}

func (c *InternalConfig) ServerName() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerNameValue, nil
}

func (c *InternalConfig) ServerVersion() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerVersionValue, nil
}

func (c *InternalConfig) LogLevel() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogLevelValue, nil
}

func (c *InternalConfig) AllowedOrigins() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AllowedOriginsValue, nil
}

func (c *InternalConfig) RateLimitRPM() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RateLimitRPMValue, nil
}

func (c *InternalConfig) UploadMaxBytes() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.UploadMaxBytesValue, nil
}

func (c *InternalConfig) LLM() (LLMSettings, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LLMValue, nil
}

func (c *InternalConfig) SSLEnabled() (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLEnabledValue, nil
}

func (c *InternalConfig) SSLMode() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLModeValue, nil
}

func (c *InternalConfig) SSLCertFile() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLCertFileValue, nil
}

func (c *InternalConfig) SSLKeyFile() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLKeyFileValue, nil
}

func (c *InternalConfig) SSLAcmeDomains() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLAcmeDomainsValue, nil
}

func (c *InternalConfig) SSLAcmeEmail() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLAcmeEmailValue, nil
}

func (c *InternalConfig) SSLAcmeCacheDir() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SSLAcmeCacheDirValue, nil
}

func (c *InternalConfig) Status(ctx context.Context) error {
	return nil
}

func (c *InternalConfig) Close() error {
	return nil
}
