// Package pkg provides the libraries behind taxoviz.
//
// # Overview
//
// taxoviz turns a SKOS concept scheme written as JSON-LD into one
// interactive force-graph page per top-level concept. The packages are:
//
//  1. [taxonomy] - load, validate and index the concept scheme
//  2. [traverse] - breadth-first expansion of one branch
//  3. [graph] - the node/edge set produced by a traversal
//  4. [render] - HTML, DOT and SVG output
//  5. [io] - JSON import and export of branch graphs
//  6. [pipeline] - per-root orchestration and file output
//  7. [cache], [observability], [errors], [buildinfo] - supporting code
//
// # Data flow
//
//	custom_knowledge_taxonomy.json
//	         ↓
//	    [taxonomy.Load] (parse, validate, index labels)
//	         ↓  for each top-level concept
//	    [traverse.Traverse] (BFS, visited on enqueue)
//	         ↓
//	    [pipeline.Runner] (render formats, write <slug>_taxonomy.html)
//
// # Quick Start
//
//	tax, err := taxonomy.Load("custom_knowledge_taxonomy.json", taxonomy.Options{})
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	results, err := runner.Run(ctx, tax, pipeline.Options{OutputDir: "site"})
//
// [taxonomy]: github.com/matzehuels/taxoviz/pkg/taxonomy
// [traverse]: github.com/matzehuels/taxoviz/pkg/traverse
// [graph]: github.com/matzehuels/taxoviz/pkg/graph
// [render]: github.com/matzehuels/taxoviz/pkg/render
// [io]: github.com/matzehuels/taxoviz/pkg/io
// [pipeline]: github.com/matzehuels/taxoviz/pkg/pipeline
// [cache]: github.com/matzehuels/taxoviz/pkg/cache
// [observability]: github.com/matzehuels/taxoviz/pkg/observability
// [errors]: github.com/matzehuels/taxoviz/pkg/errors
// [buildinfo]: github.com/matzehuels/taxoviz/pkg/buildinfo
// [taxonomy.Load]: github.com/matzehuels/taxoviz/pkg/taxonomy#Load
// [traverse.Traverse]: github.com/matzehuels/taxoviz/pkg/traverse#Traverse
// [pipeline.Runner]: github.com/matzehuels/taxoviz/pkg/pipeline#Runner
package pkg
