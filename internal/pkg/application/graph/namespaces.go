package graph

import "github.com/knakk/rdf"

//Namespace is an RDF namespace base. Term appends a local name to form a
//predicate or class IRI.
type Namespace string

func (ns Namespace) Term(name string) rdf.IRI {
	return MustIRI(string(ns) + name)
}

// Namespaces used by the DCAT-AP_IT profile. The prefixes and local names
// are fixed by the profile and must be reproduced exactly.
var (
	DCATAPIT = Namespace("http://dati.gov.it/onto/dcatapit#")
	DCT      = Namespace("http://purl.org/dc/terms/")
	DCAT     = Namespace("http://www.w3.org/ns/dcat#")
	FOAF     = Namespace("http://xmlns.com/foaf/0.1/")
	VCARD    = Namespace("http://www.w3.org/2006/vcard/ns#")
	SKOS     = Namespace("http://www.w3.org/2004/02/skos/core#")
	LOCN     = Namespace("http://www.w3.org/ns/locn#")
	RDFNS    = Namespace("http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	XSD      = Namespace("http://www.w3.org/2001/XMLSchema#")
)

//RDFType is rdf:type.
var RDFType = RDFNS.Term("type")

//MustIRI returns the IRI for s and panics if it is not a valid IRI. It is
//meant for namespace constants and URIs composed from configured bases, not
//for record supplied values.
func MustIRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic(err)
	}
	return iri
}

//Lit returns a plain literal.
func Lit(s string) rdf.Literal {
	l, _ := rdf.NewLiteral(s)
	return l
}

//LangLit returns a language tagged literal, falling back to a plain literal
//when the tag is not usable.
func LangLit(s, lang string) rdf.Literal {
	l, err := rdf.NewLangLiteral(s, lang)
	if err != nil {
		return Lit(s)
	}
	return l
}
