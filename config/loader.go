package config

import (
	"fmt"
	"os"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"

	"cmdecho/handler"
	"cmdecho/logging"
)

// Load reads the YAML file at path and fills in defaults. An empty path
// yields the defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file error: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config error: %w", err)
		}
	}

	setDefaultValues(&cfg)
	return &cfg, nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Common.LogLevel == "" {
		cfg.Common.LogLevel = "info"
	}
	if cfg.Common.LogFormat == "" {
		cfg.Common.LogFormat = logging.FormatJSON
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadBuffer == "" {
		cfg.Server.ReadBuffer = "4KiB"
	}
	if cfg.Server.OnFailure == "" {
		cfg.Server.OnFailure = handler.AbortProcess.String()
	}
}

// TCPServerConfig validates the server section and converts it.
func (c *Config) TCPServerConfig() (*handler.TCPServerConfig, error) {
	sc := handler.NewTCPServerConfig()
	sc.Address = c.Server.Address

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", c.Server.Port)
	}
	sc.Port = c.Server.Port

	size, err := bytes.Parse(c.Server.ReadBuffer)
	if err != nil {
		return nil, fmt.Errorf("invalid read_buffer %q: %w", c.Server.ReadBuffer, err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("read_buffer must be positive, got %q", c.Server.ReadBuffer)
	}
	sc.BufferSize = int(size)

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return nil, fmt.Errorf("timeouts must not be negative")
	}
	sc.ReadTimeout = c.Server.ReadTimeout
	sc.WriteTimeout = c.Server.WriteTimeout

	sc.OnFailure, err = handler.ParseFailurePolicy(c.Server.OnFailure)
	if err != nil {
		return nil, err
	}
	sc.ReusePort = c.Server.ReusePort
	return sc, nil
}
