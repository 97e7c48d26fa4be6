package database

import (
	"context"
	"fmt"
	"io"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	yaml "gopkg.in/yaml.v2"
)

type seedFile struct {
	Vocabularies []seedVocabulary `yaml:"vocabularies"`
}

type seedVocabulary struct {
	Name string     `yaml:"name"`
	ID   string     `yaml:"id"`
	Tags []seedTerm `yaml:"tags"`
}

type seedTerm struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels"`
}

// LoadVocabularies seeds the datastore with controlled vocabulary terms and
// their localized labels from a YAML document.
func LoadVocabularies(ctx context.Context, db Datastore, input io.Reader) error {
	log := logging.GetFromContext(ctx)

	buf, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read vocabulary seed: %w", err)
	}

	file := seedFile{}
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return fmt.Errorf("failed to parse vocabulary seed: %w", err)
	}

	for _, vocabulary := range file.Vocabularies {
		for _, term := range vocabulary.Tags {
			err := db.AddTag(ctx, vocabulary.Name, vocabulary.ID, term.Name, term.Labels)
			if err != nil {
				return fmt.Errorf("failed to seed term %s/%s: %w", vocabulary.Name, term.Name, err)
			}
		}

		log.Info().Msgf("seeded vocabulary %s with %d terms", vocabulary.Name, len(vocabulary.Tags))
	}

	return nil
}
