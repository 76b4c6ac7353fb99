package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/taxoviz/pkg/graph"
)

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(graph.Node{ID: "ex:animals", Label: "Animals"})
	g.AddNode(graph.Node{ID: "ex:mammals", Label: `Mammals "furry"`, Depth: 1,
		Meta: graph.Metadata{graph.MetaDefinition: "Warm blooded"}})
	g.AddEdge(graph.Edge{From: "ex:animals", To: "ex:mammals"})
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	checks := []string{
		"digraph G {",
		`"ex:animals" [label="Animals", style="rounded,filled,bold"`,
		`"ex:mammals" [label="Mammals \"furry\"", tooltip="Warm blooded"]`,
		`"ex:animals" -> "ex:mammals";`,
	}
	for _, want := range checks {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{Detailed: true})
	if !strings.Contains(dot, `depth: 1\ndefinition: Warm blooded`) {
		t.Errorf("detailed label missing metadata:\n%s", dot)
	}
}

func TestDotQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"Säugetiere", `"Säugetiere"`},
	}
	for _, tt := range tests {
		if got := dotQuote(tt.in); got != tt.want {
			t.Errorf("dotQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz wasm startup is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sampleGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Animals") {
		t.Error("RenderSVG() output does not look like the rendered graph")
	}
}
