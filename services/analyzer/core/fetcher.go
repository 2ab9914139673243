package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/logger"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// blockElements start a new paragraph in the extracted body text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// skippedElements never contribute to the body text.
var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true, "svg": true,
}

// ContentFetcher downloads a page and extracts the facts the scorers need
type ContentFetcher struct {
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
}

func NewContentFetcher(httpClient interfaces.HTTPClient, logger interfaces.Logger) *ContentFetcher {
	return &ContentFetcher{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Fetch retrieves pageURL. A non-2xx answer is returned as *models.FetchError.
func (f *ContentFetcher) Fetch(ctx context.Context, pageURL string) (*models.WebsiteContent, error) {
	log := logger.WithContext(ctx, f.logger)

	response, err := f.httpClient.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		status := response.Status
		if status == "" {
			status = fmt.Sprintf("%d %s", response.StatusCode, http.StatusText(response.StatusCode))
		}
		return nil, &models.FetchError{URL: pageURL, StatusCode: response.StatusCode, Status: status}
	}

	content, err := f.extract(response.Body, pageURL, log)
	if err != nil {
		return nil, err
	}

	if lm := response.Headers.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			t = t.UTC()
			content.LastModified = &t
		} else {
			log.Debug("Ignoring unparsable Last-Modified header", "url", pageURL, "value", lm)
		}
	}

	log.Debug("Content extracted",
		"url", pageURL,
		"headers", len(content.Headers),
		"links", len(content.Links),
		"schema_blocks", len(content.Schema),
	)

	return content, nil
}

func (f *ContentFetcher) extract(body []byte, pageURL string, log interfaces.Logger) (*models.WebsiteContent, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	content := &models.WebsiteContent{
		URL:     pageURL,
		HTML:    string(body),
		Meta:    make(map[string]string),
		Headers: make(map[string][]string),
	}

	f.traverse(root, base, content)
	content.Text = bodyText(root)

	doc := goquery.NewDocumentFromNode(root)
	extractMeta(doc, content)
	content.Schema = f.extractSchema(doc, pageURL, log)

	return content, nil
}

// traverse collects the title, headings and links in document order
func (f *ContentFetcher) traverse(node *html.Node, base *url.URL, content *models.WebsiteContent) {
	if node.Type == html.ElementNode {
		switch node.Data {
		case "title":
			if content.Title == "" {
				content.Title = extractText(node)
			}
		case "h1", "h2", "h3", "h4":
			if text := extractText(node); text != "" {
				content.Headers[node.Data] = append(content.Headers[node.Data], text)
			}
		case "a":
			if link := f.extractLink(node, base); link != "" {
				content.Links = append(content.Links, link)
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		f.traverse(child, base, content)
	}
}

// extractLink resolves an anchor's href, skipping fragments and script links
func (f *ContentFetcher) extractLink(node *html.Node, base *url.URL) string {
	var href string
	for _, attr := range node.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}

	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}

	linkURL, err := url.Parse(href)
	if err != nil {
		f.logger.Debug("Failed to parse link URL", "href", href, "error", err)
		return ""
	}

	return base.ResolveReference(linkURL).String()
}

func extractMeta(doc *goquery.Document, content *models.WebsiteContent) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("name", "")
		if key == "" {
			key = s.AttrOr("property", "")
		}
		value, ok := s.Attr("content")
		if key == "" || !ok {
			return
		}
		content.Meta[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	})
}

// extractSchema decodes every JSON-LD block. Blocks that fail to decode
// are logged and skipped.
func (f *ContentFetcher) extractSchema(doc *goquery.Document, pageURL string, log interfaces.Logger) []map[string]any {
	var schema []map[string]any

	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "application/ld+json") {
			return
		}

		var decoded any
		if err := json.Unmarshal([]byte(s.Text()), &decoded); err != nil {
			log.Warn("Skipping malformed JSON-LD block", "url", pageURL, "index", i, "error", err)
			return
		}

		switch v := decoded.(type) {
		case map[string]any:
			schema = append(schema, v)
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					schema = append(schema, obj)
				}
			}
		}
	})

	return schema
}

// extractText returns the node's text with whitespace collapsed
func extractText(node *html.Node) string {
	var text strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
			text.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(text.String()), " ")
}

// bodyText renders the visible text of the page. Block elements are
// separated by blank lines so paragraphs survive extraction.
func bodyText(root *html.Node) string {
	var raw strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if blockElements[n.Data] {
				raw.WriteString("\n\n")
				defer raw.WriteString("\n\n")
			}
		case html.TextNode:
			raw.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var blocks []string
	for _, block := range strings.Split(raw.String(), "\n\n") {
		if block = strings.Join(strings.Fields(block), " "); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

var _ interfaces.ContentFetcher = (*ContentFetcher)(nil)
