// Package taxonomy loads SKOS concept schemes written as JSON-LD.
//
// # Input Format
//
// A taxonomy document is a JSON object with an @graph array of typed items.
// One item is the concept scheme and lists the top-level concepts; the other
// items are concepts linked by skos:narrower (and optionally skos:broader):
//
//	{
//	  "@graph": [
//	    {"@id": "ex:scheme", "@type": "skos:ConceptScheme",
//	     "skos:hasTopConcept": [{"@id": "ex:animals"}]},
//	    {"@id": "ex:animals", "@type": "skos:Concept", "skos:prefLabel": "Animals",
//	     "skos:narrower": [{"@id": "ex:mammals"}]},
//	    {"@id": "ex:mammals", "@type": "skos:Concept", "skos:prefLabel": "Mammals"}
//	  ]
//	}
//
// Decoding is strongly typed: items and references are validated with
// struct tags when the document is parsed, so a missing @id surfaces as a
// SCHEMA_INVALID error from [Parse] instead of an empty node later on.
//
// # Lookups
//
// The resulting [Taxonomy] is immutable. [Taxonomy.Label] resolves display
// labels with a fallback to the identifier, and [Taxonomy.Narrower] returns
// child lists (empty for unknown or leaf concepts). Identifiers referenced
// but never defined are valid everywhere; they simply have no label and no
// children.
package taxonomy
