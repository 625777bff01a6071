package goquery

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipper"
)

// dateLayouts are tried in order when parsing publish dates: ISO-8601,
// a fixed offset variant, and a bare date as seen in <time datetime>.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02",
}

// extractMetadata pulls title, author, publish date, description,
// keywords, and language from meta tags, <time>, and JSON-LD. Each
// field tries an ordered list of strategies until one succeeds.
// WordCount and ReadingTime are left for the caller to derive from the
// assembled main text.
func extractMetadata(doc *goquery.Document) (string, clipper.Metadata) {
	ld := parseJSONLD(doc)

	title := collapseText(doc.Find("title").First().Text())
	if title == "" {
		title = metaContent(doc, `meta[property="og:title"]`)
	}

	meta := clipper.Metadata{
		Author:      extractAuthor(doc, ld),
		PublishedAt: extractPublishDate(doc, ld),
		Description: extractDescription(doc, ld),
		Keywords:    extractKeywords(doc, ld),
		Language:    extractLanguage(doc, ld),
	}
	return title, meta
}

func extractAuthor(doc *goquery.Document, ld []any) string {
	if v := metaContent(doc, `meta[name="author"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[property="article:author"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[name="twitter:creator"]`); v != "" {
		return v
	}
	if v := collapseText(doc.Find(`span[class*="author"]`).First().Text()); v != "" {
		return v
	}
	return jsonldString(ld, "author", "creator", "publisher")
}

func extractPublishDate(doc *goquery.Document, ld []any) time.Time {
	raws := []string{
		metaContent(doc, `meta[property="article:published_time"]`),
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		raws = append(raws, v)
	}
	raws = append(raws,
		metaContent(doc, `meta[name="date"]`),
		jsonldString(ld, "datePublished", "dateCreated", "uploadDate"),
	)

	for _, raw := range raws {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func extractDescription(doc *goquery.Document, ld []any) string {
	if v := metaContent(doc, `meta[name="description"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[property="og:description"]`); v != "" {
		return v
	}
	return jsonldString(ld, "description")
}

func extractKeywords(doc *goquery.Document, ld []any) []string {
	raw := metaContent(doc, `meta[name="keywords"]`)
	if raw == "" {
		raw = jsonldString(ld, "keywords")
	}
	if raw == "" {
		return nil
	}
	var keywords []string
	seen := make(map[string]struct{})
	for _, kw := range strings.Split(raw, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, kw)
	}
	return keywords
}

func extractLanguage(doc *goquery.Document, ld []any) string {
	if v, ok := doc.Find("html").First().Attr("lang"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := metaContent(doc, `meta[property="og:locale"]`); v != "" {
		return v
	}
	return jsonldString(ld, "inLanguage")
}

// metaContent returns the trimmed content attribute of the first
// element matching the selector.
func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// parseJSONLD collects every application/ld+json script in the
// document as decoded JSON values. Top-level arrays and @graph
// containers are flattened; undecodable scripts are skipped.
func parseJSONLD(doc *goquery.Document) []any {
	var out []any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return
		}
		switch val := v.(type) {
		case []any:
			out = append(out, val...)
		case map[string]any:
			if graph, ok := val["@graph"].([]any); ok {
				out = append(out, graph...)
			}
			out = append(out, val)
		}
	})
	return out
}

// jsonldString looks up the first non-empty string for any of the given
// paths across all JSON-LD values. Paths may be dotted
// (e.g. "author.name"); a terminal object falls back to its "name"
// field and a terminal array to its first element.
func jsonldString(ld []any, paths ...string) string {
	for _, path := range paths {
		for _, doc := range ld {
			if v := lookupPath(doc, strings.Split(path, ".")); v != "" {
				return v
			}
		}
	}
	return ""
}

func lookupPath(v any, path []string) string {
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			return ""
		}
		v, ok = m[key]
		if !ok {
			return ""
		}
	}
	return terminalString(v)
}

// terminalString coerces a JSON-LD terminal value to a string: strings
// pass through, objects yield their "name", arrays yield their first
// element's terminal string.
func terminalString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if name, ok := val["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	case []any:
		if len(val) > 0 {
			return terminalString(val[0])
		}
	}
	return ""
}
