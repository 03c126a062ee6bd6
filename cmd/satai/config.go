package main

import (
	"os"
	"path/filepath"

	// Packages
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Config struct {
	// Model provider
	Model    string `yaml:"model,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`

	// Prompt sent with every turn
	SystemPrompt string `yaml:"system_prompt,omitempty"`

	// Remote tool server
	MCPEndpoint string `yaml:"mcp_endpoint,omitempty"`

	// Path to the config file
	path string
}

//////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// The name of the config file
	configFile = "config.yaml"
)

//////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new config object for the given application name
func NewConfig(name string) (*Config, error) {
	path, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	// Append the name of the application to the path
	if name != "" {
		path = filepath.Join(path, name)
	}

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	// The config to return
	var config Config
	config.path = filepath.Join(path, configFile)

	// Load the config from the file, ignore any errors
	_ = config.Load()

	// Return success
	return &config, nil
}

//////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Load the config from the file
func (c *Config) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	return yaml.Unmarshal(data, c)
}

// Save the config to the file
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}
