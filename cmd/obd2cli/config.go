package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the obd2cli configuration file format (YAML).
type Config struct {
	// Transport selects "slcan" (serial) or "cantcp" (networked bridge).
	Transport string `yaml:"transport"`

	// Serial device path, used when Transport is "slcan".
	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud_rate"`
	Bitrate  int    `yaml:"bitrate"`

	// Network address, used when Transport is "cantcp".
	Address string `yaml:"address"`
	Network string `yaml:"network"` // "tcp" or "udp"

	TimeoutMS int `yaml:"timeout_ms"`

	// ArbitrationID defaults to the functional broadcast ID (0x7DF) when
	// zero.
	ArbitrationID uint32 `yaml:"arbitration_id"`
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := &Config{
		Transport: "slcan",
		BaudRate:  115200,
		Bitrate:   500000,
		Network:   "tcp",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
