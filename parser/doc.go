// Package parser loads OpenAPI Specification documents into an
// order-preserving node tree.
//
// Documents are kept as go.yaml.in/yaml/v4 nodes rather than decoded into
// typed structs. Every node is one of a small set of kinds (mapping,
// sequence, scalar, alias), so consumers walk the tree with a switch on
// Kind, and key order, unknown fields and extension properties survive
// untouched. YAML and JSON sources are both accepted; JSON is read through
// the same YAML parser.
//
// # Quick Start
//
//	result, err := parser.Parse("openapi.yml")
//	if errors.Is(err, fs.ErrNotExist) {
//		log.Fatal("input not found")
//	}
//	fmt.Println(result.Version, result.Stats.OperationCount)
//
// Or use functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithBytes(data),
//		parser.WithSourceName("inline.yaml"),
//	)
//
// # Node helpers
//
// [Lookup], [Pairs], [ScalarValue] and [Resolve] read mapping and scalar
// nodes; [NewMapping], [AppendPair] and [NewString] build new ones. The
// tree held by a [ParseResult] is treated as read-only.
//
// # Ordered output
//
// [MarshalYAML] and [MarshalJSON] render a node tree deterministically in
// source key order. Aliases are expanded, comments are dropped and flow or
// quoting styles are normalized to block style.
package parser
