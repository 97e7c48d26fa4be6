package profiles

import (
	"github.com/knakk/rdf"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
)

// SerializeBaseline asserts the plain DCAT rendition of a record: free text
// themes, languages and formats as literals, generic publisher and contact
// point nodes. The profile pass supersedes most of these triples, so running
// the baseline first exercises the removal paths the way a layered export
// pipeline does.
func (p *Profile) SerializeBaseline(g *graph.Graph, rec *domain.CatalogRecord) rdf.IRI {
	ref := p.DatasetRef(rec)

	g.Assert(ref, graph.RDFType, graph.DCAT.Term("Dataset"))

	if rec.Title != "" {
		g.Assert(ref, graph.DCT.Term("title"), graph.Lit(rec.Title))
	}
	if rec.Description != "" {
		g.Assert(ref, graph.DCT.Term("description"), graph.Lit(rec.Description))
	}

	identifier := rec.Identifier
	if identifier == "" {
		identifier = rec.ID
	}
	g.Assert(ref, graph.DCT.Term("identifier"), graph.Lit(identifier))

	for _, theme := range rec.Theme {
		g.Assert(ref, graph.DCAT.Term("theme"), graph.Lit(theme))
	}
	for _, lang := range rec.Language {
		g.Assert(ref, graph.DCT.Term("language"), graph.Lit(lang))
	}
	if rec.Frequency != "" {
		g.Assert(ref, graph.DCT.Term("accrualPeriodicity"), graph.Lit(rec.Frequency))
	}

	if rec.URL != "" {
		if page, err := rdf.NewIRI(rec.URL); err == nil {
			g.Assert(ref, graph.DCAT.Term("landingPage"), page)
		}
	}

	if rec.Issued != "" {
		g.Assert(ref, graph.DCT.Term("issued"), graph.Lit(rec.Issued))
	}
	if rec.Modified != "" {
		g.Assert(ref, graph.DCT.Term("modified"), graph.Lit(rec.Modified))
	}

	if rec.PublisherName != "" {
		publisher := g.NewBNode()
		g.Assert(ref, graph.DCT.Term("publisher"), publisher)
		g.Assert(publisher, graph.RDFType, graph.FOAF.Term("Organization"))
		g.Assert(publisher, graph.FOAF.Term("name"), graph.Lit(rec.PublisherName))

		poc := g.NewBNode()
		g.Assert(ref, graph.DCAT.Term("contactPoint"), poc)
		g.Assert(poc, graph.RDFType, graph.VCARD.Term("Kind"))
		g.Assert(poc, graph.VCARD.Term("fn"), graph.Lit(rec.PublisherName))
	}

	for i := range rec.Distributions {
		dist := &rec.Distributions[i]
		distRef := p.DistributionRef(rec, dist)

		g.Assert(ref, graph.DCAT.Term("distribution"), distRef)
		g.Assert(distRef, graph.RDFType, graph.DCAT.Term("Distribution"))

		if dist.Name != "" {
			g.Assert(distRef, graph.DCT.Term("title"), graph.Lit(dist.Name))
		}
		if dist.Description != "" {
			g.Assert(distRef, graph.DCT.Term("description"), graph.Lit(dist.Description))
		}
		if dist.Format != "" {
			g.Assert(distRef, graph.DCT.Term("format"), graph.Lit(dist.Format))
		}
		if dist.AccessURL != "" {
			if access, err := rdf.NewIRI(dist.AccessURL); err == nil {
				g.Assert(distRef, graph.DCAT.Term("accessURL"), access)
			}
		}
	}

	return ref
}
