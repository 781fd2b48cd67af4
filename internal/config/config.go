// Package config defines the configuration sections shared by the
// prodsync client and the catalogd server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlevkov/prodsync/internal/product"
)

// HTTPConfig configures the catalogd HTTP listener.
type HTTPConfig struct {
	Port           int `koanf:"port"`
	MaxHeaderBytes int `koanf:"maxHeaderBytes"`
	Timeout        struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readHeader"`
	} `koanf:"timeout"`
}

func (c *HTTPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", c.Port)
	}
	if c.Timeout.Read <= 0 {
		return fmt.Errorf("invalid HTTP server read timeout: %v", c.Timeout.Read)
	}
	if c.Timeout.Write <= 0 {
		return fmt.Errorf("invalid HTTP server write timeout: %v", c.Timeout.Write)
	}
	if c.Timeout.Idle <= 0 {
		return fmt.Errorf("invalid HTTP server idle timeout: %v", c.Timeout.Idle)
	}
	if c.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("invalid HTTP server read header timeout: %v", c.Timeout.ReadHeader)
	}
	return nil
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) Validate() error {
	return nil
}

// ShutdownConfig bounds graceful shutdown.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout is not configured")
	}
	return nil
}

// RemoteConfig points the client at the remote product service.
type RemoteConfig struct {
	BaseURL string        `koanf:"baseUrl"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *RemoteConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("remote base URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid remote request timeout: %v", c.Timeout)
	}
	return nil
}

// SeedProduct is a product record preloaded into catalogd at startup.
type SeedProduct struct {
	SKU      string  `koanf:"sku"`
	Name     string  `koanf:"name"`
	Price    float64 `koanf:"price"`
	Quantity int     `koanf:"quantity"`
	Total    float64 `koanf:"total"`
}

// Products converts the seed section into the shared product model.
func Products(seed []SeedProduct) []product.Product {
	list := make([]product.Product, len(seed))
	for i, s := range seed {
		list[i] = product.Product{
			SKU:      s.SKU,
			Name:     s.Name,
			Price:    s.Price,
			Quantity: s.Quantity,
			Total:    s.Total,
		}
	}
	return list
}

// ServerConfig is the full catalogd configuration.
type ServerConfig struct {
	HTTPServer HTTPConfig     `koanf:"server"`
	Log        LogConfig      `koanf:"log"`
	Shutdown   ShutdownConfig `koanf:"shutdown"`
	Seed       []SeedProduct  `koanf:"seed"`
}

func (c *ServerConfig) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))
	b.WriteString(fmt.Sprintf("  seed: %d products\n", len(c.Seed)))

	return b.String()
}

// Validate checks if the configuration values are valid.
func (c *ServerConfig) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	return nil
}

// ClientConfig is the full prodsync client configuration.
type ClientConfig struct {
	Remote RemoteConfig `koanf:"remote"`
	Log    LogConfig    `koanf:"log"`
}

func (c *ClientConfig) String() string {
	var b strings.Builder

	b.WriteString("\n--- Remote Configuration ---\n")
	b.WriteString(fmt.Sprintf("  remote.baseUrl: %s\n", c.Remote.BaseURL))
	b.WriteString(fmt.Sprintf("  remote.timeout: %v\n", c.Remote.Timeout))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))

	return b.String()
}

// Validate checks if the configuration values are valid.
func (c *ClientConfig) Validate() error {
	if err := c.Remote.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}
