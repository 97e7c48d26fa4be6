// Package vocab maps controlled vocabulary codes to the EU authority URIs
// used by the DCAT-AP_IT profile and materializes SKOS concept nodes with
// localized preferred labels.
package vocab

import (
	"context"
	"fmt"
	"strings"

	"github.com/knakk/rdf"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
)

// Authority base URIs. Codes are appended verbatim to form concept URIs.
const (
	ThemeBaseURI  = "http://publications.europa.eu/resource/authority/data-theme/"
	LangBaseURI   = "http://publications.europa.eu/resource/authority/language/"
	FreqBaseURI   = "http://publications.europa.eu/resource/authority/frequency/"
	FormatBaseURI = "http://publications.europa.eu/resource/authority/file-type/"
	GeoBaseURI    = "http://publications.europa.eu/resource/authority/place/"
)

//DefaultKey is the authority code used whenever a record supplies no value
//for a vocabulary backed field.
const DefaultKey = "OP_DATPRO"

//Scheme is a named controlled vocabulary with its authority base URI.
type Scheme struct {
	Name    string
	BaseURI string
}

var (
	Themes      = Scheme{Name: "eu_themes", BaseURI: ThemeBaseURI}
	Languages   = Scheme{Name: "languages", BaseURI: LangBaseURI}
	Places      = Scheme{Name: "places", BaseURI: GeoBaseURI}
	Frequencies = Scheme{Name: "frequencies", BaseURI: FreqBaseURI}
	FileTypes   = Scheme{Name: "filetype", BaseURI: FormatBaseURI}
)

//ConceptURI composes the authority URI for a code within this scheme.
func (s Scheme) ConceptURI(code string) rdf.IRI {
	return graph.MustIRI(s.BaseURI + code)
}

//LabelStore is the keyed lookup service for multilingual labels. Lookups
//for unknown keys return empty maps, not errors; errors signal a failing
//collaborator and are propagated untouched.
type LabelStore interface {
	GetLabelsForRecord(ctx context.Context, recordID string) (map[string]map[string]string, error)
	GetLabelsForDistribution(ctx context.Context, distributionID string) (map[string]map[string]string, error)
	GetLocalizedTermLabels(ctx context.Context, code string) (map[string]string, error)
}

//Resolver materializes concept nodes for vocabulary codes. It memoizes the
//(scheme, code) pairs it has already resolved, so labels are fetched at most
//once per output graph. Create one Resolver per serialization run.
type Resolver struct {
	store LabelStore
	log   zerolog.Logger
	seen  map[string]struct{}
}

func NewResolver(store LabelStore, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store: store,
		log:   logger,
		seen:  map[string]struct{}{},
	}
}

//AddConcept asserts a skos:Concept node for the code with one localized
//prefLabel per available language. A code without any localized label is a
//no-op: the bare URI reference is enough in that case.
func (r *Resolver) AddConcept(ctx context.Context, g *graph.Graph, scheme Scheme, code string) error {
	key := scheme.Name + ":" + code
	if _, done := r.seen[key]; done {
		return nil
	}

	labels, err := r.store.GetLocalizedTermLabels(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get localized labels for %q: %w", code, err)
	}

	r.seen[key] = struct{}{}

	if len(labels) == 0 {
		r.log.Debug().Msgf("no localized labels for %s code %s", scheme.Name, code)
		return nil
	}

	concept := scheme.ConceptURI(code)
	g.Assert(concept, graph.RDFType, graph.SKOS.Term("Concept"))

	langs := maps.Keys(labels)
	slices.Sort(langs)

	for _, lang := range langs {
		g.Assert(concept, graph.SKOS.Term("prefLabel"), graph.LangLit(labels[lang], PrimaryLang(lang)))
	}

	return nil
}

//PrimaryLang reduces a language tag to its primary subtag: the label system
//rejects region qualified tags, so en_GB and en-GB both become en.
func PrimaryLang(tag string) string {
	if i := strings.IndexAny(tag, "_-"); i >= 0 {
		return tag[:i]
	}
	return tag
}
