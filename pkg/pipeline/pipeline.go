// Package pipeline turns a loaded taxonomy into one set of files per
// top-level concept.
//
// Every root goes through the same two stages:
//
//  1. Traverse: breadth-first expansion of the branch into a graph
//  2. Export: render each requested format and write <slug>_taxonomy.<ext>
//
// [Runner.Run] processes the roots of a taxonomy in scheme order. Failures
// are isolated per root: a root whose export fails records the error in
// its [Result] and the remaining roots still run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	tax, err := runner.Load(ctx, "custom_knowledge_taxonomy.json", taxonomy.Options{})
//	if err != nil {
//	    return err // malformed input or missing scheme: nothing is written
//	}
//	results, err := runner.Run(ctx, tax, pipeline.Options{OutputDir: "out"})
//	for _, r := range results {
//	    for _, f := range r.Files {
//	        fmt.Println("Saved:", f)
//	    }
//	}
package pipeline

import (
	"strings"
	"time"
	"unicode"

	"github.com/matzehuels/taxoviz/pkg/cache"
	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/render"
	"github.com/matzehuels/taxoviz/pkg/render/html"
)

const (
	// DefaultInput is the taxonomy file read when none is given.
	DefaultInput = "custom_knowledge_taxonomy.json"

	// DefaultOutputDir is where artifacts are written when no directory is
	// given.
	DefaultOutputDir = "."

	// DefaultJobs processes roots one at a time.
	DefaultJobs = 1

	// MaxJobs caps concurrent root exports.
	MaxJobs = 64

	// NameSuffix is appended to the slug of every output file.
	NameSuffix = "_taxonomy"

	// TTLArtifact is how long rendered SVGs stay in the cache.
	TTLArtifact = 7 * 24 * time.Hour
)

// Options configures a pipeline run.
type Options struct {
	// OutputDir receives the artifacts. It must exist.
	OutputDir string

	// Formats to export for every root (default html).
	Formats []string

	// Roots restricts the run to these concept IDs, in this order.
	// Empty means every root of the scheme.
	Roots []string

	// MaxDepth limits traversal depth. Zero is unlimited.
	MaxDepth int

	// Jobs is the number of roots processed concurrently (default 1).
	Jobs int

	// HTML configures the html format.
	HTML html.Options

	// Detailed adds depth and metadata to dot and svg node labels.
	Detailed bool

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.DefaultFormat}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, id := range o.Roots {
		if err := errors.ValidateConceptID(id); err != nil {
			return err
		}
	}
	if o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max depth must not be negative: %d", o.MaxDepth)
	}
	if o.Jobs == 0 {
		o.Jobs = DefaultJobs
	}
	if o.Jobs < 1 || o.Jobs > MaxJobs {
		return errors.New(errors.ErrCodeInvalidInput, "jobs must be between 1 and %d: %d", MaxJobs, o.Jobs)
	}
	o.HTML = o.HTML.WithDefaults()
	if err := o.HTML.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for a rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
}

// Result is the outcome of processing one root.
type Result struct {
	RootID   string
	Label    string
	Files    []string // Paths written, in format order
	Nodes    int
	Edges    int
	CacheHit bool // An SVG was served from the artifact cache
	Err      error
}

// Slug derives a file-name stem from a label: lowercased, with every
// whitespace rune and path separator replaced by an underscore.
func Slug(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, strings.ToLower(label))
}

// OutputName returns the artifact file name for a root label, e.g.
// OutputName("Animal Kingdom", "html") is "animal_kingdom_taxonomy.html".
func OutputName(label, ext string) string {
	return Slug(label) + NameSuffix + "." + ext
}
