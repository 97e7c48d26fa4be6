package config

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestLoadFillsDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load(bytes.NewBufferString(configYaml))
	is.NoErr(err)

	is.Equal(cfg.BaseURL, "https://data.example.com")
	is.Equal(cfg.Catalog.Title, "Catalogo Open Data")

	// omitted values keep their defaults
	is.Equal(cfg.Catalog.Language, "it")
	is.Equal(cfg.Catalog.Issued, "1900-01-01")
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	is := is.New(t)

	_, err := Load(bytes.NewBufferString("catalog: ["))
	is.True(err != nil)
}

const configYaml string = `
base_url: https://data.example.com
catalog:
  title: Catalogo Open Data
  publisher_name: Regione Esempio
  publisher_identifier: r_esempio
`
