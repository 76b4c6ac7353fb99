package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/taxoviz/pkg/cache"
	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/graph"
	"github.com/matzehuels/taxoviz/pkg/observability"
	"github.com/matzehuels/taxoviz/pkg/render"
	"github.com/matzehuels/taxoviz/pkg/render/nodelink"
	"github.com/matzehuels/taxoviz/pkg/taxonomy"
	"github.com/matzehuels/taxoviz/pkg/traverse"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state besides the cache and logger, so one
// Runner can serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads and indexes the taxonomy at path.
func (r *Runner) Load(ctx context.Context, path string, opts taxonomy.Options) (*taxonomy.Taxonomy, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	tax, err := taxonomy.Load(path, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, path, tax.Len(), time.Since(start), nil)

	id, label := tax.Scheme()
	r.Logger.Debug("loaded taxonomy",
		"path", path,
		"scheme", id,
		"label", label,
		"concepts", tax.Len(),
		"roots", len(tax.Roots()),
		"duration", time.Since(start))
	return tax, nil
}

// Run traverses and exports every root of tax (or opts.Roots) and returns
// one Result per root in root order.
//
// A failing root does not stop the others. The returned error joins the
// errors of all failed roots and is nil when every root succeeded. With
// opts.Jobs > 1 roots are processed concurrently; the taxonomy is read-only
// and every traversal owns its visited set and graph.
func (r *Runner) Run(ctx context.Context, tax *taxonomy.Taxonomy, opts Options) ([]Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	roots := opts.Roots
	if len(roots) == 0 {
		roots = tax.Roots()
	}

	// Roots sharing an output name run in one goroutine in root order, so
	// the later root overwrites the earlier file at any job count.
	results := make([]Result, len(roots))
	var eg errgroup.Group
	eg.SetLimit(opts.Jobs)
	for _, group := range r.nameGroups(tax, roots) {
		eg.Go(func() error {
			for _, i := range group {
				results[i] = r.runRoot(ctx, tax, roots[i], opts)
			}
			return nil
		})
	}
	_ = eg.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.RootID, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (r *Runner) runRoot(ctx context.Context, tax *taxonomy.Taxonomy, rootID string, opts Options) Result {
	res := Result{RootID: rootID, Label: tax.Label(rootID)}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	g, err := traverse.Traverse(tax, rootID, traverse.Options{MaxDepth: opts.MaxDepth})
	if err != nil {
		res.Err = err
		return res
	}
	res.Nodes, res.Edges = g.NodeCount(), g.EdgeCount()
	observability.Pipeline().OnTraverseComplete(ctx, rootID, res.Nodes, res.Edges, time.Since(start))
	r.Logger.Debug("traversed branch",
		"root", rootID,
		"nodes", res.Nodes,
		"edges", res.Edges,
		"depth", g.MaxDepth())

	res.Files, res.CacheHit, res.Err = r.ExportWithCacheInfo(ctx, g, res.Label, opts)
	return res
}

// Export renders g in every requested format and writes
// <OutputDir>/<slug>_taxonomy.<ext> for each, creating or overwriting the
// file. It returns the paths written before any failure.
func (r *Runner) Export(ctx context.Context, g *graph.Graph, label string, opts Options) ([]string, error) {
	files, _, err := r.ExportWithCacheInfo(ctx, g, label, opts)
	return files, err
}

// ExportWithCacheInfo is [Runner.Export] that also reports whether an
// artifact came from the cache.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, g *graph.Graph, label string, opts Options) ([]string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	var rootID string
	if root, ok := g.Root(); ok {
		rootID = root.ID
	}
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, rootID, opts.Formats)
	start := time.Now()

	var (
		files  []string
		anyHit bool
	)
	for _, format := range opts.Formats {
		data, hit, err := r.RenderWithCacheInfo(ctx, g, format, opts)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
			hooks.OnExportComplete(ctx, rootID, files, time.Since(start), err)
			return files, anyHit, err
		}
		anyHit = anyHit || hit

		path := filepath.Join(opts.OutputDir, OutputName(label, format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			err = errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
			hooks.OnExportComplete(ctx, rootID, files, time.Since(start), err)
			return files, anyHit, err
		}
		files = append(files, path)
		r.Logger.Debug("wrote artifact", "path", path, "bytes", len(data), "cached", hit)
	}

	hooks.OnExportComplete(ctx, rootID, files, time.Since(start), nil)
	return files, anyHit, nil
}

// RenderWithCacheInfo renders one format. SVG output is looked up in and
// stored to the artifact cache, keyed by the hash of the DOT source; the
// other formats are cheap and always rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, format string, opts Options) ([]byte, bool, error) {
	if format != render.FormatSVG {
		data, err := Render(ctx, g, format, opts)
		return data, false, err
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts(format))
	hooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	} else if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	hooks.OnCacheMiss(ctx, "artifact")

	data, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// nameGroups partitions root indexes by output name. Groups are ordered by
// their first root and indexes within a group keep root order. Roots whose
// labels map to the same file are logged as a warning.
func (r *Runner) nameGroups(tax *taxonomy.Taxonomy, roots []string) [][]int {
	var groups [][]int
	byName := make(map[string]int, len(roots))
	for i, id := range roots {
		name := Slug(tax.Label(id))
		g, dup := byName[name]
		if !dup {
			byName[name] = len(groups)
			groups = append(groups, []int{i})
			continue
		}
		if first := roots[groups[g][0]]; first != id {
			r.Logger.Warn("roots share an output name, later root overwrites",
				"name", name+NameSuffix, "first", first, "second", id)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
