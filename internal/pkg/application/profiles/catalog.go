package profiles

import (
	"context"
	"strings"

	"github.com/knakk/rdf"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/vocab"
)

// SerializeCatalog asserts the catalog node itself: types, descriptive
// literals from configuration, the configured publisher agent, the theme
// taxonomy reference and the catalog language as an authority URI. The
// locale a baseline pass tags the catalog with is superseded.
func (p *Profile) SerializeCatalog(ctx context.Context, g *graph.Graph) rdf.IRI {
	ref := p.CatalogRef()
	cat := p.cfg.Catalog

	g.Assert(ref, graph.RDFType, graph.DCAT.Term("Catalog"))
	g.Assert(ref, graph.RDFType, graph.DCATAPIT.Term("Catalog"))

	if cat.Title != "" {
		g.Assert(ref, graph.DCT.Term("title"), graph.Lit(cat.Title))
	}
	if cat.Description != "" {
		g.Assert(ref, graph.DCT.Term("description"), graph.Lit(cat.Description))
	}

	g.Remove(ref, graph.DCT.Term("publisher"), nil)
	p.addAgent(g, ref, graph.DCT.Term("publisher"), cat.PublisherName, cat.PublisherIdentifier)

	g.Remove(ref, graph.DCT.Term("issued"), nil)
	g.Assert(ref, graph.DCT.Term("issued"), rdf.NewTypedLiteral(cat.Issued, graph.XSD.Term("date")))

	p.addThemeTaxonomy(g, ref)
	p.addCatalogLanguage(g, ref)

	return ref
}

// addThemeTaxonomy references the data-theme concept scheme the record
// themes are drawn from. The scheme URI is the authority base without its
// trailing slash.
func (p *Profile) addThemeTaxonomy(g *graph.Graph, ref rdf.Subject) {
	taxonomy := graph.MustIRI(strings.TrimRight(vocab.ThemeBaseURI, "/"))

	g.Assert(ref, graph.DCAT.Term("themeTaxonomy"), taxonomy)
	g.Assert(taxonomy, graph.RDFType, graph.SKOS.Term("ConceptScheme"))
	g.Assert(taxonomy, graph.DCT.Term("title"), graph.LangLit("Il Vocabolario Data Theme", "it"))
}

// addCatalogLanguage replaces any literal locale with the language authority
// URI for the configured catalog language, falling back to Italian for
// locales outside the fixed mapping.
func (p *Profile) addCatalogLanguage(g *graph.Graph, ref rdf.Subject) {
	code, ok := languagesMapping[p.cfg.Catalog.Language]
	if !ok {
		code = "ITA"
	}

	g.Remove(ref, graph.DCT.Term("language"), nil)
	g.Assert(ref, graph.DCT.Term("language"), vocab.Languages.ConceptURI(code))
}

//LinkDataset attaches a dataset reference to the catalog node.
func (p *Profile) LinkDataset(g *graph.Graph, catalog rdf.Subject, dataset rdf.IRI) {
	g.Assert(catalog, graph.DCAT.Term("dataset"), dataset)
}
