package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// SKOS vocabulary in both compact and expanded form.
const (
	TypeConceptScheme = "skos:ConceptScheme"
	TypeConcept       = "skos:Concept"

	iriConceptScheme = "http://www.w3.org/2004/02/skos/core#ConceptScheme"
	iriConcept       = "http://www.w3.org/2004/02/skos/core#Concept"
)

// Document is the JSON-LD envelope of a taxonomy file.
type Document struct {
	Context json.RawMessage `json:"@context,omitempty"`
	Graph   []Item          `json:"@graph" validate:"required"`
}

// Item is one typed entry of the @graph array: the concept scheme or a
// concept.
type Item struct {
	ID            string      `json:"@id" validate:"required"`
	Type          Types       `json:"@type"`
	PrefLabel     LangStrings `json:"skos:prefLabel"`
	Definition    LangStrings `json:"skos:definition"`
	Narrower      Refs        `json:"skos:narrower" validate:"dive"`
	Broader       Refs        `json:"skos:broader" validate:"dive"`
	HasTopConcept Refs        `json:"skos:hasTopConcept" validate:"dive"`
	TopConceptOf  Refs        `json:"skos:topConceptOf" validate:"dive"`
}

// IsScheme reports whether the item is typed as a concept scheme.
func (it Item) IsScheme() bool {
	return it.Type.Has(TypeConceptScheme) || it.Type.Has(iriConceptScheme)
}

// IsConcept reports whether the item is typed as a concept.
func (it Item) IsConcept() bool {
	return it.Type.Has(TypeConcept) || it.Type.Has(iriConcept)
}

// Ref is a node reference. JSON-LD allows both {"@id": "ex:x"} and, with a
// suitable context, the bare string "ex:x".
type Ref struct {
	ID string `json:"@id" validate:"required"`
}

// UnmarshalJSON accepts an object carrying @id or a bare identifier string.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// Refs is a reference list that also accepts a single reference.
type Refs []Ref

// UnmarshalJSON accepts a single reference or an array of references.
func (rs *Refs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*rs = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var many []Ref
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*rs = many
		return nil
	}
	var one Ref
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*rs = Refs{one}
	return nil
}

// IDs returns the referenced identifiers in order.
func (rs Refs) IDs() []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

// Types holds @type, which JSON-LD allows as a string or an array.
type Types []string

// UnmarshalJSON accepts a single type or an array of types.
func (ts *Types) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var many []string
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*ts = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*ts = Types{one}
	return nil
}

// Has reports whether t is one of the item types.
func (ts Types) Has(t string) bool { return slices.Contains(ts, t) }

// LangString is a literal with an optional language tag.
type LangString struct {
	Value    string `json:"@value"`
	Language string `json:"@language,omitempty"`
}

// UnmarshalJSON accepts a plain string or a value object.
func (s *LangString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		s.Language = ""
		return json.Unmarshal(b, &s.Value)
	}
	type plain LangString
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("literal: %w", err)
	}
	*s = LangString(p)
	return nil
}

// LangStrings holds a literal property that may be given once or once per
// language.
type LangStrings []LangString

// UnmarshalJSON accepts a literal or an array of literals.
func (ls *LangStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*ls = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var many []LangString
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*ls = many
		return nil
	}
	var one LangString
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*ls = LangStrings{one}
	return nil
}

// Pick selects the value for lang. Without a match it falls back to the
// first untagged value, then to the first value. Returns "" when empty.
func (ls LangStrings) Pick(lang string) string {
	if len(ls) == 0 {
		return ""
	}
	if lang != "" {
		for _, s := range ls {
			if s.Language == lang {
				return s.Value
			}
		}
	}
	for _, s := range ls {
		if s.Language == "" {
			return s.Value
		}
	}
	return ls[0].Value
}
