package scoring

// JSON-LD helpers. @type may be a string or an array of strings, and
// blocks may wrap their nodes in an @graph array.

func typeNames(node map[string]any) []string {
	switch t := node["@type"].(type) {
	case string:
		if t != "" {
			return []string{t}
		}
	case []any:
		var names []string
		for _, v := range t {
			if s, ok := v.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

// schemaNodes flattens top-level blocks and their @graph members.
func schemaNodes(schema []map[string]any) []map[string]any {
	var nodes []map[string]any
	for _, block := range schema {
		nodes = append(nodes, block)
		graph, ok := block["@graph"].([]any)
		if !ok {
			continue
		}
		for _, item := range graph {
			if node, ok := item.(map[string]any); ok {
				nodes = append(nodes, node)
			}
		}
	}
	return nodes
}

// schemaTypes returns the distinct @type values in first-seen order.
func schemaTypes(schema []map[string]any) []string {
	seen := make(map[string]bool)
	var types []string
	for _, node := range schemaNodes(schema) {
		for _, t := range typeNames(node) {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types
}

func hasSchemaType(schema []map[string]any, want string) bool {
	for _, t := range schemaTypes(schema) {
		if t == want {
			return true
		}
	}
	return false
}

func hasType(node map[string]any, want string) bool {
	for _, t := range typeNames(node) {
		if t == want {
			return true
		}
	}
	return false
}

func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

// firstEntity returns node[key] when it is an object, or its first object
// element when it is an array.
func firstEntity(node map[string]any, key string) map[string]any {
	switch v := node[key].(type) {
	case map[string]any:
		return v
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}
