package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreConfig is the bootstrap catalog configuration: the store the service
// prices against and the stock locations it starts with. Loaded once at
// startup from STORE_CONFIG_PATH.
type StoreConfig struct {
	Store struct {
		Name                string `yaml:"name"`
		DefaultCurrencyCode string `yaml:"default_currency_code"`
	} `yaml:"store"`
	Locations []struct {
		Name   string `yaml:"name"`
		Active bool   `yaml:"active"`
	} `yaml:"locations"`
}

func LoadStoreConfig(path string) (*StoreConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store config: %w", err)
	}
	var cfg StoreConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse store config: %w", err)
	}
	if cfg.Store.Name == "" {
		return nil, fmt.Errorf("store config: store.name is required")
	}
	if cfg.Store.DefaultCurrencyCode == "" {
		cfg.Store.DefaultCurrencyCode = "USD"
	}
	return &cfg, nil
}
