package parser

import "go.yaml.in/yaml/v4"

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of component schemas
}

// httpMethods lists the path item keys that hold operations (OAS 3.0 through 3.2).
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
	"query": true,
}

// IsHTTPMethod reports whether a path item key names an operation.
func IsHTTPMethod(key string) bool {
	return httpMethods[key]
}

// GetDocumentStats returns statistics for a document's root mapping node
func GetDocumentStats(root *yaml.Node) DocumentStats {
	stats := DocumentStats{}

	for _, path := range Pairs(Lookup(root, KeyPaths)) {
		stats.PathCount++
		for _, op := range Pairs(path.Value) {
			if k, ok := ScalarValue(op.Key); ok && IsHTTPMethod(k) && IsMapping(op.Value) {
				stats.OperationCount++
			}
		}
	}
	stats.SchemaCount = len(SchemaMap(root))

	return stats
}

// SchemaMap indexes components.schemas by name. Repeated names keep the last
// definition, matching how a decoder would load the mapping.
func SchemaMap(root *yaml.Node) map[string]*yaml.Node {
	pairs := Pairs(Lookup(Lookup(root, KeyComponents), KeySchemas))
	defs := make(map[string]*yaml.Node, len(pairs))
	for _, p := range pairs {
		if name, ok := ScalarValue(p.Key); ok {
			defs[name] = p.Value
		}
	}
	return defs
}
