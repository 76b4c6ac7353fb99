// Package traverse walks a taxonomy breadth-first from a root concept.
//
// [Traverse] turns one branch of a taxonomy into a [graph.Graph]. It uses an
// explicit FIFO [Queue] and marks concepts as visited when they are
// enqueued, which keeps shared descendants and cycles from being expanded
// twice. Each call owns its visited set: traversing two roots that share a
// descendant includes that descendant in both results.
//
//	tax, _ := taxonomy.Load("custom_knowledge_taxonomy.json", taxonomy.Options{})
//	for _, root := range tax.Roots() {
//	    g, err := traverse.Traverse(tax, root, traverse.Options{})
//	    ...
//	}
//
// [graph.Graph]: github.com/matzehuels/taxoviz/pkg/graph
package traverse
