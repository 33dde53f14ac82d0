package config

import "time"

type Config struct {
	Common CommonConfig `yaml:"common"`
	Server ServerConfig `yaml:"server"`
}

type CommonConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`

	// Human readable size, e.g. "4KiB" or "4096".
	ReadBuffer   string        `yaml:"read_buffer"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	OnFailure    string        `yaml:"on_failure"`
	ReusePort    bool          `yaml:"reuse_port"`
}
