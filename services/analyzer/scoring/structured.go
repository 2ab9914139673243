package scoring

import (
	"fmt"
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// aeoTypes are the schema types answer engines make most use of.
var aeoTypes = map[string]bool{
	"FAQPage":        true,
	"HowTo":          true,
	"Article":        true,
	"WebPage":        true,
	"Product":        true,
	"ItemList":       true,
	"BreadcrumbList": true,
	"Organization":   true,
	"WebSite":        true,
	"Person":         true,
}

func scoreStructuredData(c *models.WebsiteContent, _ time.Time) Result {
	if len(c.Schema) == 0 {
		return Result{Score: 30, Example: "No structured data found"}
	}

	score := 40
	types := schemaTypes(c.Schema)
	score += countBonus(len(types), [2]int{5, 15}, [2]int{3, 10}, [2]int{1, 5})

	relevant := 0
	for _, t := range types {
		if aeoTypes[t] {
			relevant++
		}
	}
	score += countBonus(relevant, [2]int{5, 25}, [2]int{3, 15}, [2]int{1, 10})

	for _, t := range types {
		if t == "FAQPage" || t == "HowTo" {
			score += 10
		}
	}

	return Result{Score: clamp(score), Example: schemaExample(c.Schema)}
}

// schemaExample describes the first typed node, looking inside @graph containers.
func schemaExample(schema []map[string]any) string {
	var first map[string]any
	for _, node := range schemaNodes(schema) {
		if len(typeNames(node)) > 0 {
			first = node
			break
		}
	}
	if first == nil {
		return "No structured data found"
	}

	names := typeNames(first)

	example := "Type: " + names[0]
	if name := stringField(first, "name"); name != "" {
		example += fmt.Sprintf(", Name: %q", truncate(name, 100))
	}
	if hasType(first, "FAQPage") {
		if q := firstEntity(first, "mainEntity"); q != nil {
			if question := stringField(q, "name"); question != "" {
				example += fmt.Sprintf(", Sample question: %q", truncate(question, 150))
			}
		}
	}
	return example
}
