// Package profiles serializes internal catalog records into RDF graphs
// conforming to the Italian DCAT-AP national profile (DCAT-AP_IT), on top of
// a baseline DCAT pass whose generic triples it supersedes.
package profiles

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/config"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/services/organisations"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/vocab"
	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
)

//AgentSentinel is the literal written for agent names and identifiers that
//are absent from the record. Agent nodes always carry both literals.
const AgentSentinel = "N/A"

// languagesMapping maps the catalog's two letter locale onto the EU language
// authority code used at catalog level.
var languagesMapping = map[string]string{
	"it":    "ITA",
	"de":    "GER",
	"en":    "ENG",
	"en_GB": "ENG",
}

// formatMapping guesses a file-type authority code from a free text format
// name when a distribution carries no explicit mapped format.
var formatMapping = map[string]string{
	"WMS":  "MAP_SRVC",
	"HTML": "HTML_SIMPL",
	"CSV":  "CSV",
	"XLS":  "XLS",
	"ODS":  "ODS",
	"ZIP":  "OP_DATPRO", // too unspecific to infer a real type
}

//Profile serializes records and the catalog into one output graph. It keeps
//per run concept memoization, so create one Profile per output graph; it is
//not safe for concurrent use. Concurrent exports each get their own Profile
//and Graph and may share the underlying stores.
type Profile struct {
	cfg      *config.Configuration
	resolver *vocab.Resolver
	labels   vocab.LabelStore
	orgs     organisations.Registry
	log      zerolog.Logger
}

func New(cfg *config.Configuration, labels vocab.LabelStore, orgs organisations.Registry, logger zerolog.Logger) *Profile {
	return &Profile{
		cfg:      cfg,
		resolver: vocab.NewResolver(labels, logger),
		labels:   labels,
		orgs:     orgs,
		log:      logger,
	}
}

//CatalogRef is the canonical URI of the catalog itself.
func (p *Profile) CatalogRef() rdf.IRI {
	return graph.MustIRI(strings.TrimRight(p.cfg.BaseURL, "/"))
}

//DatasetRef is the canonical URI of a record, derived from the catalog
//address rather than from any harvested URL.
func (p *Profile) DatasetRef(rec *domain.CatalogRecord) rdf.IRI {
	return graph.MustIRI(strings.TrimRight(p.cfg.BaseURL, "/") + "/dataset/" + rec.ID)
}

//DistributionRef is the canonical URI of a distribution.
func (p *Profile) DistributionRef(rec *domain.CatalogRecord, dist *domain.Distribution) rdf.IRI {
	return graph.MustIRI(strings.TrimRight(p.cfg.BaseURL, "/") + "/dataset/" + rec.ID + "/resource/" + dist.ID)
}

func (p *Profile) organisationRef(org *domain.Organisation) rdf.IRI {
	return graph.MustIRI(strings.TrimRight(p.cfg.BaseURL, "/") + "/organization/" + org.ID)
}

// addAgent asserts an anonymous agent node attached to ref via pred, typed
// both as dcatapit:Agent and foaf:Agent, and returns the node so callers can
// attach localized labels to it.
func (p *Profile) addAgent(g *graph.Graph, ref rdf.Subject, pred rdf.IRI, name, identifier string) rdf.Blank {
	if name == "" {
		name = AgentSentinel
	}
	if identifier == "" {
		identifier = AgentSentinel
	}

	agent := g.NewBNode()

	g.Assert(agent, graph.RDFType, graph.DCATAPIT.Term("Agent"))
	g.Assert(agent, graph.RDFType, graph.FOAF.Term("Agent"))
	g.Assert(ref, pred, agent)

	g.Assert(agent, graph.FOAF.Term("name"), graph.Lit(name))
	g.Assert(agent, graph.DCT.Term("identifier"), graph.Lit(identifier))

	return agent
}

// addContactPoint resolves the record's owning organisation and replaces
// whatever contact point a baseline pass asserted with a vcard organisation
// node. Email, telephone and site are omitted when the organisation has
// none; a failing organisation lookup is propagated.
func (p *Profile) addContactPoint(g *graph.Graph, ref rdf.Subject, rec *domain.CatalogRecord) error {
	if rec.OwningOrganisationID == "" {
		p.log.Warn().Msgf("record %s has no owning organisation, skipping contact point", rec.ID)
		return nil
	}

	org, err := p.orgs.Get(rec.OwningOrganisationID)
	if err != nil {
		return fmt.Errorf("failed to resolve owning organisation %q: %w", rec.OwningOrganisationID, err)
	}

	g.Remove(ref, graph.DCAT.Term("contactPoint"), nil)

	poc := p.organisationRef(org)
	g.Assert(ref, graph.DCAT.Term("contactPoint"), poc)
	g.Assert(poc, graph.RDFType, graph.DCATAPIT.Term("Organization"))
	g.Assert(poc, graph.RDFType, graph.VCARD.Term("Kind"))
	g.Assert(poc, graph.RDFType, graph.VCARD.Term("Organization"))
	g.Assert(poc, graph.VCARD.Term("fn"), graph.Lit(org.Name))

	if org.Email != "" {
		mailto := "mailto:" + strings.TrimPrefix(org.Email, "mailto:")
		if email, err := rdf.NewIRI(mailto); err == nil {
			g.Assert(poc, graph.VCARD.Term("hasEmail"), email)
		} else {
			p.log.Warn().Msgf("organisation %s has an unusable email %q", org.ID, org.Email)
		}
	}
	if org.Telephone != "" {
		g.Assert(poc, graph.VCARD.Term("hasTelephone"), graph.Lit(org.Telephone))
	}
	if org.Site != "" {
		g.Assert(poc, graph.VCARD.Term("hasURL"), graph.Lit(org.Site))
	}

	return nil
}

type multilangTarget struct {
	node      rdf.Subject
	predicate rdf.IRI
}

// applyMultilang asserts one language tagged literal per entry of the label
// map, for every field that has a target. Fields without a target are
// skipped with a warning; language tags are reduced to their primary subtag.
func (p *Profile) applyMultilang(g *graph.Graph, labels map[string]map[string]string, mapping map[string]multilangTarget) {
	if len(labels) == 0 {
		return
	}

	fields := maps.Keys(labels)
	slices.Sort(fields)

	for _, field := range fields {
		target, ok := mapping[field]
		if !ok {
			p.log.Warn().Msgf("multilingual field %q is not mapped", field)
			continue
		}

		langs := maps.Keys(labels[field])
		slices.Sort(langs)

		for _, lang := range langs {
			g.Assert(target.node, target.predicate, graph.LangLit(labels[field][lang], vocab.PrimaryLang(lang)))
		}
	}
}

//GuessFormat looks a free text format name up in the static guess table.
func GuessFormat(format string) (string, bool) {
	if format == "" {
		return "", false
	}
	code, ok := formatMapping[strings.ToUpper(strings.TrimSpace(format))]
	return code, ok
}
