// Package licenses resolves the license signals found in harvested metadata
// onto a registry of known licenses.
package licenses

import (
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
)

// Registry matches raw license signals against known licenses. FindByToken
// checks the signals in order of reliability: explicit id first, then URL,
// then free text license name, then access constraints.
type Registry interface {
	FindByToken(accessConstraints, licenseText, licenseID, licenseURL string) (domain.License, bool)
	Default() domain.License
}

type registryFile struct {
	Licenses []domain.License `yaml:"licenses"`
	Default  string           `yaml:"default"`
}

type registry struct {
	licenses   []domain.License
	defaultLic domain.License
}

// NewRegistry reads a YAML license registry. A nil input yields the built in
// registry with the Creative Commons Attribution license as default.
func NewRegistry(input io.Reader) (Registry, error) {
	if input == nil {
		return builtinRegistry(), nil
	}

	buf, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read license registry: %w", err)
	}

	file := registryFile{}
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("failed to parse license registry: %w", err)
	}

	if len(file.Licenses) == 0 {
		return nil, fmt.Errorf("license registry contains no licenses")
	}

	r := &registry{licenses: file.Licenses}

	for _, lic := range file.Licenses {
		if lic.ID == file.Default {
			r.defaultLic = lic
		}
	}
	if r.defaultLic.ID == "" {
		r.defaultLic = file.Licenses[0]
	}

	return r, nil
}

func builtinRegistry() Registry {
	licenses := []domain.License{
		{ID: "cc-by", Name: "Creative Commons Attribuzione", URI: "https://creativecommons.org/licenses/by/4.0/"},
		{ID: "cc-by-sa", Name: "Creative Commons Attribuzione - Condividi allo stesso modo", URI: "https://creativecommons.org/licenses/by-sa/4.0/"},
		{ID: "cc-zero", Name: "Creative Commons CC0", URI: "https://creativecommons.org/publicdomain/zero/1.0/"},
		{ID: "cc-nc", Name: "Creative Commons Attribuzione - Non commerciale", URI: "https://creativecommons.org/licenses/by-nc/4.0/"},
		{ID: "iodl", Name: "Italian Open Data License", URI: "https://www.dati.gov.it/iodl/2.0/"},
		{ID: "odbl", Name: "Open Data Commons Open Database License", URI: "https://opendatacommons.org/licenses/odbl/1-0/"},
	}

	return &registry{
		licenses:   licenses,
		defaultLic: licenses[0],
	}
}

func (r *registry) Default() domain.License {
	return r.defaultLic
}

func (r *registry) FindByToken(accessConstraints, licenseText, licenseID, licenseURL string) (domain.License, bool) {
	for _, token := range []string{licenseID, licenseURL, licenseText, accessConstraints} {
		if lic, ok := r.match(token); ok {
			return lic, true
		}
	}
	return domain.License{}, false
}

// match compares a signal against id, uri and name of every known license,
// case insensitively and in both containment directions, so that both a
// bare id and a verbose rights statement embedding a license URL resolve.
func (r *registry) match(token string) (domain.License, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return domain.License{}, false
	}

	for _, lic := range r.licenses {
		for _, candidate := range []string{lic.ID, lic.URI, lic.Name} {
			candidate = strings.ToLower(candidate)
			if candidate == "" {
				continue
			}
			if strings.Contains(token, candidate) || strings.Contains(candidate, token) {
				return lic, true
			}
		}
	}

	return domain.License{}, false
}
