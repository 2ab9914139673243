package scoring

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

var (
	authorityDomains = []string{
		"wikipedia.org", "who.int", "nih.gov", "cdc.gov", "nature.com", "sciencedirect.com",
		"springer.com", "nejm.org", "thelancet.com", "reuters.com", "apnews.com", "bbc.co.uk",
		"bbc.com", "nytimes.com", "wsj.com", "forbes.com", "harvard.edu", "stanford.edu",
		"mit.edu", "ieee.org", "acm.org", "gartner.com", "mckinsey.com",
	}

	citationMarker  = regexp.MustCompile(`(?i)\b(?:source|reference)s?\s*:\s*([^\n]*)`)
	expertiseMarker = regexp.MustCompile(`(?i)\b(?:ph\.?d|professor|expert|specialist|certified|researcher|scientist|physician|years of experience)\b`)
	authorSelectors = `[rel="author"], [itemprop="author"], .author, .byline`
)

func scoreAuthority(c *models.WebsiteContent, _ time.Time) Result {
	score := 40
	doc := parseDocument(c.HTML)

	author, hasAuthor := authorInfo(c, doc)
	if hasAuthor {
		score += 15
	}

	citation, hasCitation := citationInfo(c.Text, doc)
	if hasCitation {
		score += 15
	}

	links := authorityLinks(c.Links)
	score += countBonus(len(links), [2]int{5, 20}, [2]int{3, 15}, [2]int{1, 10})

	var expertise []string
	for _, s := range sentences(c.Text) {
		if expertiseMarker.MatchString(s) {
			expertise = append(expertise, s)
		}
	}
	score += countBonus(len(expertise), [2]int{3, 10}, [2]int{1, 5})

	var example string
	switch {
	case author != "":
		example = "Author: " + truncate(author, 80)
	case len(links) > 0:
		example = "Authority link: " + links[0]
	case citation != "":
		example = fmt.Sprintf("Citation: %q", truncate(citation, 150))
	case len(expertise) > 0:
		example = fmt.Sprintf("Expertise: %q", truncate(expertise[0], 150))
	default:
		example = "No clear authority signals found"
	}

	return Result{Score: clamp(score), Example: example}
}

// authorInfo reports whether the page carries author markup and the best
// author name it can find, which may be empty.
func authorInfo(c *models.WebsiteContent, doc *goquery.Document) (string, bool) {
	lowerHTML := strings.ToLower(c.HTML)
	found := strings.Contains(lowerHTML, "author") || strings.Contains(lowerHTML, "byline")

	if name := strings.TrimSpace(c.Meta["author"]); name != "" {
		return name, true
	}

	for _, node := range schemaNodes(c.Schema) {
		if hasType(node, "Person") {
			found = true
			if name := stringField(node, "name"); name != "" {
				return name, true
			}
		}
		if author := firstEntity(node, "author"); author != nil {
			if name := stringField(author, "name"); name != "" {
				return name, true
			}
		}
	}

	if name := collapse(doc.Find(authorSelectors).First().Text()); name != "" {
		return name, true
	}

	return "", found
}

func citationInfo(text string, doc *goquery.Document) (string, bool) {
	if cite := doc.Find("cite"); cite.Length() > 0 {
		return collapse(cite.First().Text()), true
	}
	if m := citationMarker.FindStringSubmatch(text); m != nil {
		return collapse(m[1]), true
	}
	return "", false
}

// authorityLinks returns the links that point at a known authoritative host.
func authorityLinks(links []string) []string {
	var out []string
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		if isAuthorityHost(strings.ToLower(u.Hostname())) {
			out = append(out, link)
		}
	}
	return out
}

func isAuthorityHost(host string) bool {
	if host == "" {
		return false
	}
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.Contains(host, ".gov.") || strings.Contains(host, ".edu.") {
		return true
	}
	for _, domain := range authorityDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
