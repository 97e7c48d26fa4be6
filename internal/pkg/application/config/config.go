// Package config holds the process wide configuration. It is loaded once at
// start up and treated as immutable afterwards; every component receives it
// by reference and is safe to read it concurrently.
package config

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"
)

type Configuration struct {
	// BaseURL is the canonical address of this catalog. Dataset,
	// distribution and organisation URIs are composed from it.
	BaseURL string `yaml:"base_url"`

	Catalog Catalog `yaml:"catalog"`
}

type Catalog struct {
	Title               string `yaml:"title"`
	Description         string `yaml:"description"`
	PublisherName       string `yaml:"publisher_name"`
	PublisherIdentifier string `yaml:"publisher_identifier"`
	Issued              string `yaml:"issued"`

	// Language is the catalog's locale (two letter code); DefaultLocale is
	// the locale a baseline serializer tags the catalog with, which the
	// profile pass supersedes.
	Language      string `yaml:"language"`
	DefaultLocale string `yaml:"default_locale"`
}

//Default returns the built in configuration.
func Default() *Configuration {
	return &Configuration{
		BaseURL: "http://localhost:8880",
		Catalog: Catalog{
			PublisherName:       "unknown",
			PublisherIdentifier: "unknown",
			Issued:              "1900-01-01",
			Language:            "it",
			DefaultLocale:       "en",
		},
	}
}

//Load reads a YAML configuration, filling omitted values with defaults.
func Load(input io.Reader) (*Configuration, error) {
	cfg := Default()

	buf, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}
