package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipper"
)

// collectImages gathers image references from the winning candidate,
// resolving relative URLs against the page URL. Inline data URIs and
// empty sources are skipped; duplicates keep their first occurrence.
func collectImages(s *goquery.Selection, baseURL string) []clipper.ImageRef {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var refs []clipper.ImageRef
	seen := make(map[string]struct{})

	s.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}

		resolved := src
		if base != nil {
			if ref, err := url.Parse(src); err == nil {
				resolved = base.ResolveReference(ref).String()
			}
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}

		alt, _ := img.Attr("alt")
		refs = append(refs, clipper.ImageRef{
			SourceURL: resolved,
			AltText:   strings.TrimSpace(alt),
			Width:     intAttr(img, "width"),
			Height:    intAttr(img, "height"),
		})
	})

	return refs
}

func intAttr(s *goquery.Selection, name string) int {
	v, ok := s.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
