// Package config loads the optional configuration file shared by the task-tracker
// binaries.
//
// The file is named by the --config flag or the TASKTRACK_CONFIG environment variable.
// There is no automatic discovery: without either, the built-in defaults apply.
// Command-line flags override values from the file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when --config is not given.
const EnvVar = "TASKTRACK_CONFIG"

const (
	DefaultAddr   = "127.0.0.1:8000"
	DefaultAPIURL = "http://" + DefaultAddr
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

type ServerConfig struct {
	// Addr is the host:port the service listens on.
	Addr string `yaml:"addr"`

	// Dump writes the change journal and its rendered history to the temp dir on
	// shutdown.
	Dump bool `yaml:"dump"`
}

type ClientConfig struct {
	// APIURL is the base address of the task store service.
	APIURL string `yaml:"api_url"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Client: ClientConfig{APIURL: DefaultAPIURL},
	}
}

// Load reads path, or the file named by TASKTRACK_CONFIG when path is empty. Missing
// values keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Client.APIURL == "" {
		errs = append(errs, errors.New("client.api_url must not be empty"))
	}
	return errors.Join(errs...)
}
