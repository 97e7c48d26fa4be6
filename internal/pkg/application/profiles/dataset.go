package profiles

import (
	"context"

	"github.com/knakk/rdf"
	"golang.org/x/exp/slices"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/vocab"
	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
)

// SerializeDataset rewrites the record's portion of the graph to the national
// profile. It may run on top of a baseline pass over the same record, in
// which case the generic triples it supersedes are removed first, or on an
// empty graph.
func (p *Profile) SerializeDataset(ctx context.Context, g *graph.Graph, rec *domain.CatalogRecord) (rdf.IRI, error) {
	ref := p.DatasetRef(rec)

	g.Assert(ref, graph.RDFType, graph.DCAT.Term("Dataset"))
	g.Assert(ref, graph.RDFType, graph.DCATAPIT.Term("Dataset"))

	p.addIdentifier(g, ref, rec)
	if err := p.addThemes(ctx, g, ref, rec); err != nil {
		return ref, err
	}
	if err := p.addLanguages(ctx, g, ref, rec); err != nil {
		return ref, err
	}
	if err := p.addFrequency(ctx, g, ref, rec); err != nil {
		return ref, err
	}
	p.addLandingPage(g, ref, rec)
	if err := p.addSpatialCoverage(ctx, g, ref, rec); err != nil {
		return ref, err
	}
	p.addDates(g, ref, rec)

	holder := p.addAgents(g, ref, rec)

	if err := p.addContactPoint(g, ref, rec); err != nil {
		return ref, err
	}

	if err := p.addRecordLabels(ctx, g, ref, holder, rec); err != nil {
		return ref, err
	}

	if err := p.addDistributions(ctx, g, ref, rec); err != nil {
		return ref, err
	}

	return ref, nil
}

func (p *Profile) addIdentifier(g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) {
	identifier := rec.Identifier
	if identifier == "" {
		identifier = rec.ID
	}

	g.Remove(ref, graph.DCT.Term("identifier"), nil)
	g.Assert(ref, graph.DCT.Term("identifier"), graph.Lit(identifier))

	if rec.AlternateIdentifier != "" {
		g.Assert(ref, graph.DCT.Term("alternative"), graph.Lit(rec.AlternateIdentifier))
	}
}

// addThemes replaces any free text themes with data-theme authority URIs,
// defaulting to the catch all code when the record names none.
func (p *Profile) addThemes(ctx context.Context, g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) error {
	g.Remove(ref, graph.DCAT.Term("theme"), nil)

	themes := rec.Theme
	if len(themes) == 0 {
		themes = []string{vocab.DefaultKey}
	}

	for _, code := range themes {
		g.Assert(ref, graph.DCAT.Term("theme"), vocab.Themes.ConceptURI(code))
		if err := p.resolver.AddConcept(ctx, g, vocab.Themes, code); err != nil {
			return err
		}
	}

	return nil
}

func (p *Profile) addLanguages(ctx context.Context, g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) error {
	g.Remove(ref, graph.DCT.Term("language"), nil)

	for _, code := range rec.Language {
		g.Assert(ref, graph.DCT.Term("language"), vocab.Languages.ConceptURI(code))
		if err := p.resolver.AddConcept(ctx, g, vocab.Languages, code); err != nil {
			return err
		}
	}

	return nil
}

// addFrequency always asserts an accrual periodicity, substituting the
// catch all code for records without one. The profile makes the property
// mandatory.
func (p *Profile) addFrequency(ctx context.Context, g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) error {
	g.Remove(ref, graph.DCT.Term("accrualPeriodicity"), nil)

	code := rec.Frequency
	if code == "" {
		code = vocab.DefaultKey
	}

	g.Assert(ref, graph.DCT.Term("accrualPeriodicity"), vocab.Frequencies.ConceptURI(code))
	return p.resolver.AddConcept(ctx, g, vocab.Frequencies, code)
}

// addLandingPage replaces whatever landing page a baseline pass asserted
// (typically the harvested URL) with the record's own canonical address.
func (p *Profile) addLandingPage(g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) {
	g.Remove(ref, graph.DCAT.Term("landingPage"), nil)
	g.Assert(ref, graph.DCAT.Term("landingPage"), p.DatasetRef(rec))
}

// addSpatialCoverage asserts one blank Location node per geographical name,
// identified by the place authority URI in literal form, plus a second
// Location node when the record links a gazetteer entry directly. Both forms
// may coexist on one record.
func (p *Profile) addSpatialCoverage(ctx context.Context, g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) error {
	g.Remove(ref, graph.DCT.Term("spatial"), nil)

	for _, code := range rec.GeographicalName {
		node := g.NewBNode()

		g.Assert(ref, graph.DCT.Term("spatial"), node)
		g.Assert(node, graph.RDFType, graph.DCT.Term("Location"))
		g.Assert(node, graph.DCATAPIT.Term("geographicalIdentifier"), graph.Lit(vocab.GeoBaseURI+code))
		g.Assert(node, graph.LOCN.Term("geographicalName"), vocab.Places.ConceptURI(code))

		if err := p.resolver.AddConcept(ctx, g, vocab.Places, code); err != nil {
			return err
		}
	}

	if rec.GeographicalGeonamesURL != "" {
		node := g.NewBNode()

		g.Assert(ref, graph.DCT.Term("spatial"), node)
		g.Assert(node, graph.RDFType, graph.DCT.Term("Location"))
		g.Assert(node, graph.DCATAPIT.Term("geographicalIdentifier"), graph.Lit(rec.GeographicalGeonamesURL))
	}

	return nil
}

func (p *Profile) addDates(g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) {
	if rec.Issued != "" {
		g.Remove(ref, graph.DCT.Term("issued"), nil)
		g.Assert(ref, graph.DCT.Term("issued"), rdf.NewTypedLiteral(rec.Issued, graph.XSD.Term("date")))
	}
	if rec.Modified != "" {
		g.Remove(ref, graph.DCT.Term("modified"), nil)
		g.Assert(ref, graph.DCT.Term("modified"), rdf.NewTypedLiteral(rec.Modified, graph.XSD.Term("date")))
	}

	if rec.TemporalCoverage != nil {
		temporal := g.NewBNode()
		g.Assert(ref, graph.DCT.Term("temporal"), temporal)
		g.Assert(temporal, graph.RDFType, graph.DCT.Term("PeriodOfTime"))
		if rec.TemporalCoverage.Start != "" {
			g.Assert(temporal, graph.DCAT.Term("startDate"), rdf.NewTypedLiteral(rec.TemporalCoverage.Start, graph.XSD.Term("date")))
		}
		if rec.TemporalCoverage.End != "" {
			g.Assert(temporal, graph.DCAT.Term("endDate"), rdf.NewTypedLiteral(rec.TemporalCoverage.End, graph.XSD.Term("date")))
		}
	}

	for _, conf := range rec.ConformsTo {
		standard := g.NewBNode()
		g.Assert(ref, graph.DCT.Term("conformsTo"), standard)
		g.Assert(standard, graph.RDFType, graph.DCT.Term("Standard"))
		g.Assert(standard, graph.DCT.Term("identifier"), graph.Lit(conf.Identifier))

		langs := make([]string, 0, len(conf.Title))
		for lang := range conf.Title {
			langs = append(langs, lang)
		}
		slices.Sort(langs)

		for _, lang := range langs {
			g.Assert(standard, graph.DCT.Term("title"), graph.LangLit(conf.Title[lang], vocab.PrimaryLang(lang)))
		}
	}
}

// addAgents asserts publisher, rights holder and creator agents, replacing
// any baseline publisher node. The holder node is returned so localized
// holder names can be attached to it.
func (p *Profile) addAgents(g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) rdf.Subject {
	g.Remove(ref, graph.DCT.Term("publisher"), nil)
	p.addAgent(g, ref, graph.DCT.Term("publisher"), rec.PublisherName, rec.PublisherIdentifier)

	var holder rdf.Subject
	if rec.HolderName != "" || rec.HolderIdentifier != "" {
		holder = p.addAgent(g, ref, graph.DCT.Term("rightsHolder"), rec.HolderName, rec.HolderIdentifier)
	}

	if rec.CreatorName != "" || rec.CreatorIdentifier != "" || len(rec.CreatorNames) > 0 {
		creator := p.addAgent(g, ref, graph.DCT.Term("creator"), rec.CreatorName, rec.CreatorIdentifier)

		langs := make([]string, 0, len(rec.CreatorNames))
		for lang := range rec.CreatorNames {
			langs = append(langs, lang)
		}
		slices.Sort(langs)

		for _, lang := range langs {
			g.Assert(creator, graph.FOAF.Term("name"), graph.LangLit(rec.CreatorNames[lang], vocab.PrimaryLang(lang)))
		}
	}

	return holder
}

func (p *Profile) addRecordLabels(ctx context.Context, g *graph.Graph, ref, holder rdf.Subject, rec *domain.CatalogRecord) error {
	labels, err := p.labels.GetLabelsForRecord(ctx, rec.ID)
	if err != nil {
		return err
	}

	mapping := map[string]multilangTarget{
		"title": {node: ref, predicate: graph.DCT.Term("title")},
		"notes": {node: ref, predicate: graph.DCT.Term("description")},
	}
	if holder != nil {
		mapping["holder_name"] = multilangTarget{node: holder, predicate: graph.FOAF.Term("name")}
	}

	p.applyMultilang(g, labels, mapping)
	return nil
}

func (p *Profile) addDistributions(ctx context.Context, g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) error {
	for i := range rec.Distributions {
		dist := &rec.Distributions[i]
		distRef := p.DistributionRef(rec, dist)

		g.Assert(ref, graph.DCAT.Term("distribution"), distRef)
		g.Assert(distRef, graph.RDFType, graph.DCAT.Term("Distribution"))
		g.Assert(distRef, graph.RDFType, graph.DCATAPIT.Term("Distribution"))

		if dist.Name != "" {
			g.Assert(distRef, graph.DCT.Term("title"), graph.Lit(dist.Name))
		}
		if dist.Description != "" {
			g.Assert(distRef, graph.DCT.Term("description"), graph.Lit(dist.Description))
		}

		if err := p.addDistributionFormat(ctx, g, distRef, dist); err != nil {
			return err
		}

		if dist.AccessURL != "" {
			if access, err := rdf.NewIRI(dist.AccessURL); err == nil {
				g.Assert(distRef, graph.DCAT.Term("accessURL"), access)
			} else {
				p.log.Warn().Msgf("distribution %s has an unusable access URL %q", dist.ID, dist.AccessURL)
			}
		}

		p.addLicense(g, distRef, rec, dist)

		labels, err := p.labels.GetLabelsForDistribution(ctx, dist.ID)
		if err != nil {
			return err
		}

		p.applyMultilang(g, labels, map[string]multilangTarget{
			"name":        {node: distRef, predicate: graph.DCT.Term("title")},
			"description": {node: distRef, predicate: graph.DCT.Term("description")},
		})
	}

	return nil
}

// addDistributionFormat asserts exactly one file-type authority reference:
// the mapped format when present, a guess from the free text format name
// otherwise, and the catch all code as a last resort.
func (p *Profile) addDistributionFormat(ctx context.Context, g *graph.Graph, distRef rdf.Subject, dist *domain.Distribution) error {
	g.Remove(distRef, graph.DCT.Term("format"), nil)

	code := dist.DistributionFormat
	if code == "" {
		if guessed, ok := GuessFormat(dist.Format); ok {
			code = guessed
		} else {
			code = vocab.DefaultKey
		}
	}

	g.Assert(distRef, graph.DCT.Term("format"), vocab.FileTypes.ConceptURI(code))
	return p.resolver.AddConcept(ctx, g, vocab.FileTypes, code)
}

// addLicense attaches a license document node to the distribution, but only
// when the record or the distribution carries license information at all.
// The record level license URL wins over the distribution's own reference; a
// license without a resolvable URI becomes a blank node, and the name falls
// back from license id through title to "unknown".
func (p *Profile) addLicense(g *graph.Graph, distRef rdf.Subject, rec *domain.CatalogRecord, dist *domain.Distribution) {
	if rec.LicenseID == "" && rec.LicenseURL == "" && rec.LicenseTitle == "" && dist.LicenseURI == "" {
		return
	}

	uri := rec.LicenseURL
	if uri == "" {
		uri = dist.LicenseURI
	}

	name := rec.LicenseID
	if name == "" {
		name = rec.LicenseTitle
	}
	if name == "" {
		name = "unknown"
	}

	var license rdf.Subject
	if uri != "" {
		iri, err := rdf.NewIRI(uri)
		if err != nil {
			p.log.Warn().Msgf("distribution %s has an unusable license reference %q", dist.ID, uri)
			license = g.NewBNode()
		} else {
			license = iri
		}
	} else {
		license = g.NewBNode()
	}

	g.Remove(distRef, graph.DCT.Term("license"), nil)
	g.Assert(distRef, graph.DCT.Term("license"), license.(rdf.Object))
	g.Assert(license, graph.RDFType, graph.DCATAPIT.Term("LicenseDocument"))
	g.Assert(license, graph.RDFType, graph.DCT.Term("LicenseDocument"))
	g.Assert(license, graph.FOAF.Term("name"), graph.Lit(name))
}
