package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/taxoviz/pkg/taxonomy"
)

const sampleDoc = `{
  "@context": {"skos": "http://www.w3.org/2004/02/skos/core#"},
  "@graph": [
    {"@id": "ex:scheme", "@type": "skos:ConceptScheme", "skos:prefLabel": "Knowledge",
     "skos:hasTopConcept": [{"@id": "ex:animals"}, {"@id": "ex:plants"}]},
    {"@id": "ex:animals", "@type": "skos:Concept", "skos:prefLabel": "Animals",
     "skos:narrower": [{"@id": "ex:mammals"}, {"@id": "ex:birds"}]},
    {"@id": "ex:mammals", "@type": "skos:Concept", "skos:prefLabel": "Mammals",
     "skos:narrower": [{"@id": "ex:animals"}]},
    {"@id": "ex:birds", "@type": "skos:Concept", "skos:prefLabel": "Birds",
     "skos:definition": "Feathered vertebrates"},
    {"@id": "ex:plants", "@type": "skos:Concept", "skos:prefLabel": "Green Plants"}
  ]
}`

// writeSample writes sampleDoc into a temp dir and returns its path.
func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.Parse([]byte(sampleDoc), taxonomy.Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return tax
}

// captureStdout redirects console output for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}
