package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/taxoviz/pkg/errors"
)

// Options configures how a taxonomy document is interpreted.
type Options struct {
	// Language selects the prefLabel and definition values tagged with this
	// language. Empty means untagged values are preferred.
	Language string
}

// Concept is one node of the taxonomy. Label and Definition are empty when
// the document does not carry them.
type Concept struct {
	ID         string
	Label      string
	Definition string
	Narrower   []string
}

// Taxonomy is the immutable, identifier-keyed index built from a document.
// It is safe for concurrent reads.
type Taxonomy struct {
	concepts    map[string]*Concept
	labels      map[string]string
	order       []string
	schemeID    string
	schemeLabel string
	roots       []string
}

// Load reads and parses the taxonomy document at path.
func Load(path string, opts Options) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parses a taxonomy document from r. It does not close r.
func Read(r io.Reader, opts Options) (*Taxonomy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(data, opts)
}

// Parse decodes and validates a JSON-LD taxonomy document and indexes it.
//
// Parse fails with SCHEMA_INVALID when the document is not a JSON object
// with an @graph array, when an item or reference lacks @id, or when an @id
// is defined twice. It fails with SCHEME_NOT_FOUND when no item is typed
// skos:ConceptScheme. Missing labels are not errors.
func Parse(data []byte, opts Options) (*Taxonomy, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "decode taxonomy document")
	}
	if err := itemValidate.Struct(doc); err != nil {
		return nil, errors.New(errors.ErrCodeSchema, "document: %s", describeValidation(err))
	}
	for i, it := range doc.Graph {
		if err := itemValidate.Struct(it); err != nil {
			return nil, errors.New(errors.ErrCodeSchema, "item %d (%q): %s", i, it.ID, describeValidation(err))
		}
	}
	return build(doc, opts)
}

func build(doc Document, opts Options) (*Taxonomy, error) {
	t := &Taxonomy{
		concepts: make(map[string]*Concept, len(doc.Graph)),
		labels:   make(map[string]string, len(doc.Graph)),
		order:    make([]string, 0, len(doc.Graph)),
	}

	var scheme *Item
	for i := range doc.Graph {
		it := &doc.Graph[i]
		if _, dup := t.concepts[it.ID]; dup {
			return nil, errors.New(errors.ErrCodeSchema, "item %d: duplicate @id %q", i, it.ID)
		}
		c := &Concept{
			ID:         it.ID,
			Label:      it.PrefLabel.Pick(opts.Language),
			Definition: it.Definition.Pick(opts.Language),
			Narrower:   it.Narrower.IDs(),
		}
		t.concepts[it.ID] = c
		t.order = append(t.order, it.ID)
		if c.Label != "" {
			t.labels[it.ID] = c.Label
		}
		if scheme == nil && it.IsScheme() {
			scheme = it
		}
	}
	if scheme == nil {
		return nil, errors.New(errors.ErrCodeSchemeNotFound, "no %s item in @graph", TypeConceptScheme)
	}
	t.schemeID = scheme.ID
	t.schemeLabel = t.labels[scheme.ID]

	// skos:broader is the inverse of skos:narrower; fold it in after the
	// explicit lists so their order is preserved.
	for _, it := range doc.Graph {
		for _, parent := range it.Broader.IDs() {
			p, ok := t.concepts[parent]
			if !ok {
				p = &Concept{ID: parent}
				t.concepts[parent] = p
			}
			if !slices.Contains(p.Narrower, it.ID) {
				p.Narrower = append(p.Narrower, it.ID)
			}
		}
	}

	t.roots = slices.Clone(scheme.HasTopConcept.IDs())
	for _, it := range doc.Graph {
		if len(it.TopConceptOf) > 0 && !slices.Contains(t.roots, it.ID) {
			t.roots = append(t.roots, it.ID)
		}
	}

	return t, nil
}

// Label resolves the display label of id, falling back to the identifier
// itself when the document carries no label for it.
func (t *Taxonomy) Label(id string) string {
	if l, ok := t.labels[id]; ok {
		return l
	}
	return id
}

// Lookup returns the indexed label of id without fallback.
func (t *Taxonomy) Lookup(id string) (string, bool) {
	l, ok := t.labels[id]
	return l, ok
}

// Definition returns the definition of id, or "" if none.
func (t *Taxonomy) Definition(id string) string {
	if c, ok := t.concepts[id]; ok {
		return c.Definition
	}
	return ""
}

// Narrower returns the ordered child identifiers of id. The result is empty
// for unknown concepts and concepts without a narrower relation. Callers may
// modify the returned slice.
func (t *Taxonomy) Narrower(id string) []string {
	if c, ok := t.concepts[id]; ok {
		return slices.Clone(c.Narrower)
	}
	return nil
}

// Concept returns a copy of the concept with the given identifier.
func (t *Taxonomy) Concept(id string) (Concept, bool) {
	c, ok := t.concepts[id]
	if !ok {
		return Concept{}, false
	}
	cp := *c
	cp.Narrower = slices.Clone(c.Narrower)
	return cp, true
}

// Roots returns the top-level concept identifiers in scheme order.
func (t *Taxonomy) Roots() []string { return slices.Clone(t.roots) }

// Scheme returns the identifier and label of the concept scheme.
func (t *Taxonomy) Scheme() (id, label string) { return t.schemeID, t.schemeLabel }

// Len returns the number of items defined in the document.
func (t *Taxonomy) Len() int { return len(t.order) }

// IDs returns the identifiers of all defined items in document order.
func (t *Taxonomy) IDs() []string { return slices.Clone(t.order) }

// Search returns the concepts whose label or definition contains query,
// case-insensitively, in document order. The scheme item is never matched.
func (t *Taxonomy) Search(query string) []Concept {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Concept
	for _, id := range t.order {
		if id == t.schemeID {
			continue
		}
		c := t.concepts[id]
		if strings.Contains(strings.ToLower(c.Label), q) ||
			strings.Contains(strings.ToLower(c.Definition), q) {
			cp, _ := t.Concept(id)
			out = append(out, cp)
		}
	}
	return out
}
