package graph

import (
	"fmt"
	"io"

	"github.com/knakk/rdf"
)

//Graph is an ordered, deduplicating set of RDF triples. It supports the
//supersede pattern the profile serializer relies on: removing a generically
//asserted triple (possibly with a wildcard object) before asserting the
//profile specific one.
//
//A Graph is exclusively owned by one serialization run and is not safe for
//concurrent use.
type Graph struct {
	triples []rdf.Triple
	index   map[string]struct{}
	bnodes  int
}

func New() *Graph {
	return &Graph{
		index: map[string]struct{}{},
	}
}

//Assert adds a triple to the graph. Duplicate triples are ignored so that
//repeated concept materialization cannot grow the graph.
func (g *Graph) Assert(s rdf.Subject, p rdf.Predicate, o rdf.Object) {
	t := rdf.Triple{Subj: s, Pred: p, Obj: o}
	key := t.Serialize(rdf.NTriples)

	if _, exists := g.index[key]; exists {
		return
	}

	g.index[key] = struct{}{}
	g.triples = append(g.triples, t)
}

//Remove deletes all triples matching the given terms. A nil term acts as a
//wildcard. It returns the number of triples removed.
func (g *Graph) Remove(s rdf.Subject, p rdf.Predicate, o rdf.Object) int {
	removed := 0
	kept := g.triples[:0]

	for _, t := range g.triples {
		if termMatches(s, t.Subj) && termMatches(p, t.Pred) && termMatches(o, t.Obj) {
			delete(g.index, t.Serialize(rdf.NTriples))
			removed++
			continue
		}
		kept = append(kept, t)
	}

	g.triples = kept
	return removed
}

//Objects returns the objects of all triples with the given subject and
//predicate, in assertion order.
func (g *Graph) Objects(s rdf.Subject, p rdf.Predicate) []rdf.Object {
	objects := []rdf.Object{}
	for _, t := range g.triples {
		if termMatches(s, t.Subj) && termMatches(p, t.Pred) {
			objects = append(objects, t.Obj)
		}
	}
	return objects
}

//First returns the object of the first triple matching subject and
//predicate, or false when there is none.
func (g *Graph) First(s rdf.Subject, p rdf.Predicate) (rdf.Object, bool) {
	for _, t := range g.triples {
		if termMatches(s, t.Subj) && termMatches(p, t.Pred) {
			return t.Obj, true
		}
	}
	return nil, false
}

//Has reports whether the graph contains a triple matching the given terms,
//nil terms acting as wildcards.
func (g *Graph) Has(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	for _, t := range g.triples {
		if termMatches(s, t.Subj) && termMatches(p, t.Pred) && termMatches(o, t.Obj) {
			return true
		}
	}
	return false
}

func (g *Graph) Len() int {
	return len(g.triples)
}

//Triples returns the triples in assertion order. The returned slice is the
//graph's backing storage and must not be mutated by the caller.
func (g *Graph) Triples() []rdf.Triple {
	return g.triples
}

//NewBNode mints a blank node with an id unique within this graph.
func (g *Graph) NewBNode() rdf.Blank {
	g.bnodes++
	b, _ := rdf.NewBlank(fmt.Sprintf("b%d", g.bnodes))
	return b
}

//Serialize writes the graph in the given format.
func (g *Graph) Serialize(w io.Writer, format rdf.Format) error {
	enc := rdf.NewTripleEncoder(w, format)

	for _, t := range g.triples {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to encode triple: %w", err)
		}
	}

	return enc.Close()
}

func termMatches(pattern, term rdf.Term) bool {
	if pattern == nil {
		return true
	}
	return pattern.Serialize(rdf.NTriples) == term.Serialize(rdf.NTriples)
}
