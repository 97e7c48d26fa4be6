package harvest

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/services/licenses"
	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
)

//go:generate moq -rm -out vocabularylookup_mock.go . VocabularyLookup

// VocabularyLookup resolves harvested keywords against a controlled
// vocabulary, returning the codes of the terms that matched. Unknown
// keywords are dropped by the implementation, not reported as errors.
type VocabularyLookup interface {
	ControlledVocabularyValues(ctx context.Context, vocabularyName, vocabularyID string, keywords []string) ([]string, error)
}

// Extractor maps harvested documents onto internal catalog records using a
// per source mapping configuration.
type Extractor struct {
	cfg      *SourceConfig
	parser   *AgentParser
	vocabs   VocabularyLookup
	licenses licenses.Registry
	log      zerolog.Logger
}

func NewExtractor(cfg *SourceConfig, vocabs VocabularyLookup, licenseRegistry licenses.Registry, logger zerolog.Logger) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parser, err := cfg.AgentParser()
	if err != nil {
		return nil, err
	}

	return &Extractor{
		cfg:      cfg,
		parser:   parser,
		vocabs:   vocabs,
		licenses: licenseRegistry,
		log:      logger,
	}, nil
}

//Extract maps one harvested document onto a catalog record.
func (e *Extractor) Extract(ctx context.Context, doc *Document) (*domain.CatalogRecord, error) {
	rec := &domain.CatalogRecord{
		ID:          doc.GUID,
		Identifier:  doc.GUID,
		Title:       doc.Title,
		Description: doc.Abstract,
		URL:         doc.URL,
		Issued:      doc.DateReleased,
		Modified:    doc.DateUpdated,
	}

	// The source system scopes its identifiers as "<source>:<uuid>"; the
	// part before the colon doubles as the fallback agent code.
	defaultAgentCode := doc.GUID
	if i := strings.Index(doc.GUID, ":"); i >= 0 {
		defaultAgentCode = doc.GUID[:i]
	}

	themes, err := e.mapKeywords(ctx, doc, "eu_themes", e.cfg.ControlledVocabularies.ThemeID, e.cfg.DatasetThemes)
	if err != nil {
		return nil, err
	}
	rec.Theme = themes

	places, err := e.mapKeywords(ctx, doc, "places", e.cfg.ControlledVocabularies.PlacesID, e.cfg.DatasetPlaces)
	if err != nil {
		return nil, err
	}
	rec.GeographicalName = places

	publisher := e.extractAgent(doc, "publisher", defaultAgentCode)
	rec.PublisherName, rec.PublisherIdentifier = publisher.Name, publisher.Identifier

	holder := e.extractAgent(doc, "owner", defaultAgentCode)
	rec.HolderName, rec.HolderIdentifier = holder.Name, holder.Identifier

	e.extractCreator(doc, rec, defaultAgentCode)

	rec.Frequency = e.mapFrequency(doc)
	rec.Language = e.mapLanguages(doc)

	if doc.TemporalExtentBegin != "" || doc.TemporalExtentEnd != "" {
		rec.TemporalCoverage = &domain.TemporalCoverage{
			Start: doc.TemporalExtentBegin,
			End:   doc.TemporalExtentEnd,
		}
	}

	e.extractConformity(doc, rec)

	lic := e.resolveLicense(doc)
	rec.LicenseID = lic.ID
	rec.LicenseTitle = lic.Name
	rec.LicenseURL = lic.URI

	for _, res := range doc.Resources {
		rec.Distributions = append(rec.Distributions, domain.Distribution{
			Name:        res.Name,
			Description: res.Description,
			Format:      res.Format,
			AccessURL:   res.URL,
			LicenseURI:  lic.URI,
			RecordID:    rec.ID,
		})
	}

	return rec, nil
}

// mapKeywords collects the keyword names attached to the given thesaurus
// and resolves them against the controlled vocabulary, deduplicating the
// result and falling back to the configured default codes when nothing
// matched.
func (e *Extractor) mapKeywords(ctx context.Context, doc *Document, vocabularyName, vocabularyID string, fallback []string) ([]string, error) {
	var names []string
	for _, kw := range doc.Keywords {
		if kw.ThesaurusIdentifier == vocabularyID || kw.ThesaurusTitle == vocabularyID {
			names = append(names, kw.Names...)
		}
	}

	if len(names) == 0 {
		return fallback, nil
	}

	codes, err := e.vocabs.ControlledVocabularyValues(ctx, vocabularyName, vocabularyID, names)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	deduped := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		deduped = append(deduped, code)
	}

	if len(deduped) == 0 {
		e.log.Warn().Msgf("no %s terms matched for %s, using defaults", vocabularyName, doc.GUID)
		return fallback, nil
	}

	return deduped, nil
}

// extractAgent finds the first responsible party in the given role and
// parses its code and name. The raw organisation name is kept when the name
// rule finds nothing, and the fallback code when the code rule finds
// nothing.
func (e *Extractor) extractAgent(doc *Document, role, fallbackCode string) domain.Agent {
	for _, party := range doc.ResponsibleParties {
		if party.Role != role {
			continue
		}

		code, name := e.parser.Parse(role, party.OrganisationName)
		if name == "" {
			name = party.OrganisationName
		}
		if code == "" {
			code = fallbackCode
		}

		return domain.Agent{Role: role, Name: name, Identifier: code}
	}

	return domain.Agent{Role: role}
}

// extractCreator handles the author role, which additionally carries
// localized organisation names. Every candidate string, localized or not,
// goes through the author agent rules, and localized names from all author
// parties are merged into one creator record.
func (e *Extractor) extractCreator(doc *Document, rec *domain.CatalogRecord, fallbackCode string) {
	for _, party := range doc.ResponsibleParties {
		if party.Role != "author" {
			continue
		}

		code, name := e.parser.Parse("author", party.OrganisationName)
		if name == "" {
			name = party.OrganisationName
		}
		if code == "" {
			code = fallbackCode
		}

		if rec.CreatorName == "" {
			rec.CreatorName = name
			rec.CreatorIdentifier = code
		}

		for _, localized := range party.LocalizedNames {
			locale, ok := e.mapLocale(localized.Locale)
			if !ok {
				e.log.Warn().Msgf("dropping creator name with unmapped locale %q", localized.Locale)
				continue
			}

			_, localizedName := e.parser.Parse("author", localized.Text)
			if localizedName == "" {
				localizedName = localized.Text
			}

			if rec.CreatorNames == nil {
				rec.CreatorNames = map[string]string{}
			}
			rec.CreatorNames[locale] = localizedName
		}
	}
}

func (e *Extractor) mapFrequency(doc *Document) string {
	if doc.FrequencyOfUpdate == "" {
		return e.cfg.Frequency
	}

	code, ok := e.cfg.FrequencyMapping[doc.FrequencyOfUpdate]
	if !ok {
		e.log.Warn().Msgf("unmapped update frequency %q for %s", doc.FrequencyOfUpdate, doc.GUID)
		return e.cfg.Frequency
	}

	return code
}

// mapLanguages maps the harvested dataset languages onto authority codes,
// dropping unmapped ones. A document without any mappable language gets the
// configured default.
func (e *Extractor) mapLanguages(doc *Document) []string {
	var codes []string
	for _, lang := range doc.DatasetLanguages {
		code, ok := e.cfg.LanguageMapping[lang]
		if !ok {
			e.log.Warn().Msgf("dropping unmapped dataset language %q for %s", lang, doc.GUID)
			continue
		}
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		codes = []string{e.cfg.DatasetLanguage}
	}

	return codes
}

func (e *Extractor) extractConformity(doc *Document, rec *domain.CatalogRecord) {
	if doc.ConformitySpecificationTitle == "" {
		return
	}

	conf := domain.Conformance{Identifier: doc.ConformitySpecificationTitle}

	for _, title := range doc.ConformityTitles {
		locale, ok := e.mapLocale(title.Locale)
		if !ok {
			e.log.Warn().Msgf("dropping conformity title with unmapped locale %q", title.Locale)
			continue
		}
		if conf.Title == nil {
			conf.Title = map[string]string{}
		}
		conf.Title[locale] = title.Text
	}

	rec.ConformsTo = append(rec.ConformsTo, conf)
}

// mapLocale normalizes a locale reference as found in localized metadata
// fragments ("#ITA", "ita") into a label system locale.
func (e *Extractor) mapLocale(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimPrefix(raw, "#"))
	locale, ok := localesMapping[key]
	return locale, ok
}

// resolveLicense picks the record license: the registry default when the
// document carries no license signal at all, otherwise the best token
// match, which itself degrades to the default.
func (e *Extractor) resolveLicense(doc *Document) domain.License {
	if doc.AccessConstraints == "" && doc.License == "" && doc.LicenseID == "" && doc.LicenseURL == "" {
		return e.licenses.Default()
	}

	lic, ok := e.licenses.FindByToken(doc.AccessConstraints, doc.License, doc.LicenseID, doc.LicenseURL)
	if !ok {
		e.log.Info().Msgf("no license matched for %s, using default", doc.GUID)
		return e.licenses.Default()
	}

	return lic
}
