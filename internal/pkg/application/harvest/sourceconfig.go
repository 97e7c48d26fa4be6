package harvest

import (
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"
)

//ErrNoAgentRule is returned when a configured role has neither its own
//extraction rules nor usable fallback rules.
var ErrNoAgentRule = errors.New("no agent extraction rule for role")

// localesMapping translates ISO639-2 bibliographic codes as they appear in
// localized metadata fragments into the locales the label system uses.
var localesMapping = map[string]string{
	"ita": "it",
	"ger": "de",
	"eng": "en_GB",
}

//ControlledVocabularies names the vocabulary identifiers keyword thesauri
//are matched against.
type ControlledVocabularies struct {
	ThemeID  string `yaml:"dcatapit_skos_theme_id"`
	PlacesID string `yaml:"dcatapit_skos_places_id"`
}

//DefaultValues holds the fallback agent extraction rules applied to roles
//without rules of their own.
type DefaultValues struct {
	AgentCodeRule *Rule `yaml:"agent_code_regex"`
	OrgNameRule   *Rule `yaml:"org_name_regex"`
}

// SourceConfig is the per harvest-source mapping configuration: fallback
// vocabulary values, agent extraction rules per role, and the fixed term
// mappings onto the EU authority vocabularies.
type SourceConfig struct {
	DatasetThemes   []string `yaml:"dataset_themes"`
	DatasetPlaces   []string `yaml:"dataset_places,omitempty"`
	DatasetLanguage string   `yaml:"dataset_language"`
	Frequency       string   `yaml:"frequency"`

	Agents map[string]AgentRules `yaml:"agents"`

	ControlledVocabularies ControlledVocabularies `yaml:"controlled_vocabularies"`

	FrequencyMapping map[string]string `yaml:"mapping_frequencies_to_mdr_vocabulary"`
	LanguageMapping  map[string]string `yaml:"mapping_languages_to_mdr_vocabulary"`

	DefaultValues DefaultValues `yaml:"default_values"`
}

// DefaultSourceConfig returns the built in mapping configuration: catch all
// theme, Italian language, unknown frequency, and agent rules that extract
// IPA codes of the form "(IPA:code)" from responsible party names.
func DefaultSourceConfig() *SourceConfig {
	codeRule := &Rule{Pattern: `\(([^)]+)\:([^)]+)\)`, Groups: []int{2}}
	nameRule := &Rule{Pattern: `([^(]*)(\(IPA[^)]*\))(.+)`, Groups: []int{1, 3}}

	return &SourceConfig{
		DatasetThemes:   []string{"OP_DATPRO"},
		DatasetLanguage: "ITA",
		Frequency:       "UNKNOWN",
		Agents: map[string]AgentRules{
			"publisher": {Role: "publisher"},
			"owner":     {Role: "owner"},
			"author":    {Role: "author"},
		},
		ControlledVocabularies: ControlledVocabularies{
			ThemeID:  "theme.data-theme-skos",
			PlacesID: "theme.places-skos",
		},
		FrequencyMapping: map[string]string{
			"continual":   "UPDATE_CONT",
			"daily":       "DAILY",
			"weekly":      "WEEKLY",
			"fortnightly": "BIWEEKLY",
			"monthly":     "MONTHLY",
			"quarterly":   "QUARTERLY",
			"biannually":  "ANNUAL_2",
			"annually":    "ANNUAL",
			"asNeeded":    "IRREG",
			"irregular":   "IRREG",
			"notPlanned":  "NEVER",
			"unknown":     "UNKNOWN",
		},
		LanguageMapping: map[string]string{
			"ita": "ITA",
			"ger": "DEU",
			"eng": "ENG",
			"fre": "FRA",
			"spa": "SPA",
		},
		DefaultValues: DefaultValues{
			AgentCodeRule: codeRule,
			OrgNameRule:   nameRule,
		},
	}
}

//LoadSourceConfig reads a YAML mapping configuration, filling omitted
//values with the built in defaults, and validates it.
func LoadSourceConfig(input io.Reader) (*SourceConfig, error) {
	cfg := DefaultSourceConfig()

	buf, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read source configuration: %w", err)
	}

	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse source configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

//Validate checks that every configured role can extract both a code and a
//name, through its own rules or the fallback ones.
func (c *SourceConfig) Validate() error {
	for role, rules := range c.Agents {
		if rules.CodeRule == nil && c.DefaultValues.AgentCodeRule == nil {
			return fmt.Errorf("%w: %s (code)", ErrNoAgentRule, role)
		}
		if rules.NameRule == nil && c.DefaultValues.OrgNameRule == nil {
			return fmt.Errorf("%w: %s (name)", ErrNoAgentRule, role)
		}
	}
	return nil
}

//AgentParser builds the parser for this configuration.
func (c *SourceConfig) AgentParser() (*AgentParser, error) {
	return NewAgentParser(c.Agents, AgentRules{
		CodeRule: c.DefaultValues.AgentCodeRule,
		NameRule: c.DefaultValues.OrgNameRule,
	})
}
