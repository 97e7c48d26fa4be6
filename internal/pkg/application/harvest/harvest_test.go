package harvest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/services/licenses"
)

func TestAgentCodeIsExtractedFromIPAReference(t *testing.T) {
	is, parser := parserSetup(t)

	code, name := parser.Parse("publisher", "Regione Campania(IPA:Abc123) - Settore Open Data")

	is.Equal(code, "abc123")
	is.Equal(name, "Regione Campania - Settore Open Data")
}

func TestAgentRulesYieldNothingWithoutMatch(t *testing.T) {
	is, parser := parserSetup(t)

	code, name := parser.Parse("publisher", "Regione Campania")

	is.Equal(code, "")
	is.Equal(name, "")
}

func TestRoleSpecificRulesWinOverFallback(t *testing.T) {
	is := is.New(t)

	cfg := DefaultSourceConfig()
	cfg.Agents["publisher"] = AgentRules{
		Role:     "publisher",
		CodeRule: &Rule{Pattern: `\[([^\]]+)\]`, Groups: []int{1}},
	}

	parser, err := cfg.AgentParser()
	is.NoErr(err)

	code, _ := parser.Parse("publisher", "Somewhere [XYZ]")
	is.Equal(code, "xyz")
}

func TestValidateRejectsRoleWithoutAnyRule(t *testing.T) {
	is := is.New(t)

	cfg := DefaultSourceConfig()
	cfg.DefaultValues = DefaultValues{}

	err := cfg.Validate()
	is.True(errors.Is(err, ErrNoAgentRule))
}

func TestLoadSourceConfigOverridesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadSourceConfig(bytes.NewBufferString(sourceYaml))
	is.NoErr(err)

	is.Equal(cfg.DatasetLanguage, "DEU")
	is.Equal(cfg.Frequency, "UNKNOWN")
	is.Equal(cfg.ControlledVocabularies.ThemeID, "theme.data-theme-skos")
}

func TestExtractMapsThemeKeywords(t *testing.T) {
	is, ctx, e, vocabs := extractorSetup(t)

	vocabs.values = map[string][]string{
		"Ambiente": {"ENVI"},
		"Natura":   {"ENVI"},
	}

	doc := &Document{
		GUID: "source:abc-123",
		Keywords: []Keyword{
			{Names: []string{"Ambiente", "Natura"}, ThesaurusIdentifier: "theme.data-theme-skos"},
			{Names: []string{"boats"}, ThesaurusIdentifier: "some.other.thesaurus"},
		},
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)
	is.Equal(rec.Theme, []string{"ENVI"})
}

func TestExtractFallsBackToDefaultThemes(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	rec, err := e.Extract(ctx, &Document{GUID: "source:abc-123"})
	is.NoErr(err)
	is.Equal(rec.Theme, []string{"OP_DATPRO"})
}

func TestExtractParsesResponsibleParties(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID: "source:abc-123",
		ResponsibleParties: []ResponsibleParty{
			{Role: "publisher", OrganisationName: "Regione Campania(IPA:cam456) - Open Data"},
			{Role: "owner", OrganisationName: "Comune di Napoli"},
		},
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)

	is.Equal(rec.PublisherName, "Regione Campania - Open Data")
	is.Equal(rec.PublisherIdentifier, "cam456")

	// no rule match: raw name kept, code defaults to the guid scope
	is.Equal(rec.HolderName, "Comune di Napoli")
	is.Equal(rec.HolderIdentifier, "source")
}

func TestExtractMapsFrequencyAndLanguages(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID:              "source:abc-123",
		FrequencyOfUpdate: "fortnightly",
		DatasetLanguages:  []string{"ita", "klingon", "ger"},
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)

	is.Equal(rec.Frequency, "BIWEEKLY")
	is.Equal(rec.Language, []string{"ITA", "DEU"})
}

func TestExtractDefaultsFrequencyAndLanguage(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID:              "source:abc-123",
		FrequencyOfUpdate: "whenever",
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)

	is.Equal(rec.Frequency, "UNKNOWN")
	is.Equal(rec.Language, []string{"ITA"})
}

func TestExtractStampsLicenseOnEveryDistribution(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID: "source:abc-123",
		Resources: []Resource{
			{Name: "csv rendition", URL: "https://example.com/data.csv", Format: "CSV"},
			{Name: "api", URL: "https://example.com/api", Format: "JSON"},
		},
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)

	is.Equal(len(rec.Distributions), 2)
	for _, dist := range rec.Distributions {
		is.Equal(dist.LicenseURI, "https://creativecommons.org/licenses/by/4.0/")
	}
}

func TestExtractMatchesLicenseSignals(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID:    "source:abc-123",
		License: "dati rilasciati sotto https://www.dati.gov.it/iodl/2.0/",
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)
	is.Equal(rec.LicenseID, "iodl")
}

func TestExtractBuildsTemporalAndConformity(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID:                         "source:abc-123",
		TemporalExtentBegin:          "2020-01-01",
		TemporalExtentEnd:            "2020-12-31",
		ConformitySpecificationTitle: "D.Lgs. 32/2010",
		ConformityTitles: []TextGroup{
			{Text: "Decreto legislativo 32/2010", Locale: "#ITA"},
			{Text: "Legislative decree 32/2010", Locale: "eng"},
			{Text: "???", Locale: "xxx"},
		},
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)

	is.Equal(rec.TemporalCoverage.Start, "2020-01-01")
	is.Equal(rec.TemporalCoverage.End, "2020-12-31")

	is.Equal(len(rec.ConformsTo), 1)
	is.Equal(rec.ConformsTo[0].Identifier, "D.Lgs. 32/2010")
	is.Equal(rec.ConformsTo[0].Title["it"], "Decreto legislativo 32/2010")
	is.Equal(rec.ConformsTo[0].Title["en_GB"], "Legislative decree 32/2010")
	is.Equal(len(rec.ConformsTo[0].Title), 2)
}

func TestExtractCollectsLocalizedCreatorNames(t *testing.T) {
	is, ctx, e, _ := extractorSetup(t)

	doc := &Document{
		GUID: "source:abc-123",
		ResponsibleParties: []ResponsibleParty{
			{
				Role:             "author",
				OrganisationName: "Provincia di Bolzano (IPA:bzp01) ufficio dati",
				LocalizedNames: []TextGroup{
					{Text: "Provincia di Bolzano", Locale: "#ITA"},
					{Text: "Provinz Bozen(IPA:bzp01) Datenamt", Locale: "ger"},
				},
			},
			{
				Role:             "author",
				OrganisationName: "Province of Bolzano",
				LocalizedNames: []TextGroup{
					{Text: "Province of Bolzano", Locale: "eng"},
				},
			},
		},
	}

	rec, err := e.Extract(ctx, doc)
	is.NoErr(err)

	// the first author party names the creator
	is.Equal(rec.CreatorIdentifier, "bzp01")

	// localized candidates run through the author rules too, and names
	// from every author party end up in the same map
	is.Equal(rec.CreatorNames["it"], "Provincia di Bolzano")
	is.Equal(rec.CreatorNames["de"], "Provinz Bozen Datenamt")
	is.Equal(rec.CreatorNames["en_GB"], "Province of Bolzano")
}

func parserSetup(t *testing.T) (*is.I, *AgentParser) {
	is := is.New(t)

	parser, err := DefaultSourceConfig().AgentParser()
	is.NoErr(err)

	return is, parser
}

func extractorSetup(t *testing.T) (*is.I, context.Context, *Extractor, *vocabularyLookupStub) {
	is := is.New(t)

	vocabs := &vocabularyLookupStub{}
	registry, err := licenses.NewRegistry(nil)
	is.NoErr(err)

	e, err := NewExtractor(DefaultSourceConfig(), vocabs, registry, zerolog.Nop())
	is.NoErr(err)

	return is, context.Background(), e, vocabs
}

type vocabularyLookupStub struct {
	values map[string][]string
}

func (s *vocabularyLookupStub) ControlledVocabularyValues(ctx context.Context, vocabularyName, vocabularyID string, keywords []string) ([]string, error) {
	codes := []string{}
	for _, keyword := range keywords {
		codes = append(codes, s.values[keyword]...)
	}
	return codes, nil
}

const sourceYaml string = `
dataset_language: DEU
`
