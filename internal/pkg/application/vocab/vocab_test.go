package vocab

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
)

func TestAddConceptAssertsLocalizedLabels(t *testing.T) {
	is := is.New(t)
	g := graph.New()

	store := &labelStoreStub{terms: map[string]map[string]string{
		"ENVI": {"it": "Ambiente", "en_GB": "Environment"},
	}}

	r := NewResolver(store, zerolog.Nop())
	err := r.AddConcept(context.Background(), g, Themes, "ENVI")

	is.NoErr(err)

	concept := Themes.ConceptURI("ENVI")
	is.True(g.Has(concept, graph.RDFType, graph.SKOS.Term("Concept")))
	is.True(g.Has(concept, graph.SKOS.Term("prefLabel"), graph.LangLit("Environment", "en")))
}

func TestAddConceptWithoutLabelsIsNoOp(t *testing.T) {
	is := is.New(t)
	g := graph.New()

	r := NewResolver(&labelStoreStub{}, zerolog.Nop())
	err := r.AddConcept(context.Background(), g, Themes, "TRAN")

	is.NoErr(err)
	is.Equal(g.Len(), 0)
}

func TestAddConceptMemoizesLookups(t *testing.T) {
	is := is.New(t)
	g := graph.New()

	store := &labelStoreStub{terms: map[string]map[string]string{
		"ENVI": {"it": "Ambiente"},
	}}

	r := NewResolver(store, zerolog.Nop())
	is.NoErr(r.AddConcept(context.Background(), g, Themes, "ENVI"))
	is.NoErr(r.AddConcept(context.Background(), g, Themes, "ENVI"))

	is.Equal(store.lookups, 1)
}

func TestAddConceptPropagatesStoreErrors(t *testing.T) {
	is := is.New(t)

	r := NewResolver(&labelStoreStub{err: errors.New("boom")}, zerolog.Nop())
	err := r.AddConcept(context.Background(), graph.New(), Themes, "ENVI")

	is.True(err != nil)
}

func TestPrimaryLang(t *testing.T) {
	is := is.New(t)

	is.Equal(PrimaryLang("en_GB"), "en")
	is.Equal(PrimaryLang("en-GB"), "en")
	is.Equal(PrimaryLang("it"), "it")
}

type labelStoreStub struct {
	terms   map[string]map[string]string
	err     error
	lookups int
}

func (s *labelStoreStub) GetLabelsForRecord(ctx context.Context, recordID string) (map[string]map[string]string, error) {
	return map[string]map[string]string{}, s.err
}

func (s *labelStoreStub) GetLabelsForDistribution(ctx context.Context, distributionID string) (map[string]map[string]string, error) {
	return map[string]map[string]string{}, s.err
}

func (s *labelStoreStub) GetLocalizedTermLabels(ctx context.Context, code string) (map[string]string, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	return s.terms[code], nil
}
