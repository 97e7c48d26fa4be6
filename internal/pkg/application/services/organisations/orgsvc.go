// Package organisations resolves record owning organisations to the contact
// details published in the catalog export.
package organisations

import (
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"

	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
)

//ErrNoSuchOrganisation is returned for lookups of unknown organisation ids.
var ErrNoSuchOrganisation = errors.New("no such organisation")

//go:generate moq -rm -out orgsvc_mock.go . Registry
type Registry interface {
	Get(organisationID string) (*domain.Organisation, error)
}

type registryFile struct {
	Organisations []domain.Organisation `yaml:"organisations"`
}

func NewRegistry(input io.Reader) (Registry, error) {
	buf, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read organisation registry: %w", err)
	}

	file := registryFile{}
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("failed to parse organisation registry: %w", err)
	}

	r := &registry{organisations: map[string]domain.Organisation{}}
	for _, org := range file.Organisations {
		r.organisations[org.ID] = org
	}

	return r, nil
}

type registry struct {
	organisations map[string]domain.Organisation
}

func (r *registry) Get(organisationID string) (*domain.Organisation, error) {
	org, ok := r.organisations[organisationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchOrganisation, organisationID)
	}
	return &org, nil
}
