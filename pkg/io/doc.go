// Package io provides JSON import and export for traversal graphs.
//
// The JSON export is one of the render formats: it records exactly what a
// visualization would draw, which makes it useful for diffing taxonomies,
// feeding other graph tools, and testing.
//
// # JSON Format
//
//	{
//	  "root": "ex:animals",
//	  "nodes": [
//	    {"id": "ex:animals", "label": "Animals", "depth": 0},
//	    {"id": "ex:mammals", "label": "Mammals", "depth": 1,
//	     "meta": {"definition": "Warm-blooded vertebrates"}}
//	  ],
//	  "edges": [
//	    {"from": "ex:animals", "to": "ex:mammals"}
//	  ]
//	}
//
// Nodes and edges appear in breadth-first discovery order. "label" is
// omitted when it equals the ID and "meta" when it is empty.
//
// Use [WriteJSON] or [ExportJSON] to write a graph and [ReadJSON] or
// [ImportJSON] to read one back.
package io
