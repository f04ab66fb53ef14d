// Package config holds the settings of the EventHub CLI.
//
// Values are layered: built-in defaults, then an optional JSON file named by
// -c/-config, then command-line flags. Later sources take precedence.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the EventHub CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the EventHub gRPC endpoint.
//   - RequestTimeout: upper bound for a single call to the server.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the JSON file and flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
