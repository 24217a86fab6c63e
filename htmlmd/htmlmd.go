// Package htmlmd converts vendor rich-text fields into Markdown.  It's a
// best-effort normalizer scoped to the tag soup vendors actually emit
// (headings, paragraphs, emphasis, code, anchors, lists); anything it doesn't
// recognise gets stripped, not preserved.
package htmlmd

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

type Normalizer struct {
	converter *md.Converter
}

// New builds a Normalizer.  When base is non-nil, relative links in vendor
// HTML are resolved against it.
func New(base *url.URL) *Normalizer {
	var opt *md.Options
	domain := ""

	if base != nil {
		domain = base.Host
		// md.NewConverter only accepts a hostname, not a base URI, so we
		// patch the scheme back in ourselves.  Adapted from
		// https://github.com/JohannesKaufmann/html-to-markdown/issues/44
		opt = &md.Options{
			GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
				if domain == "" {
					return rawURL
				}

				u, err := url.Parse(rawURL)
				if err != nil {
					// we can't do anything with this url because it is invalid
					return rawURL
				}

				if u.Scheme == "data" {
					// this is a data uri (for example an inline base64 image)
					return rawURL
				}

				if u.Scheme == "" {
					u.Scheme = base.Scheme
				}
				if u.Host == "" {
					u.Host = domain
				}

				return u.String()
			},
		}
	}

	converter := md.NewConverter(domain, true, opt)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())

	return &Normalizer{converter: converter}
}

var (
	leftoverTags  = regexp.MustCompile(`<[^>]*>`)
	excessNewline = regexp.MustCompile(`\n{3,}`)
)

// Normalize converts an HTML fragment to Markdown.  Empty input yields an
// empty string.  Leftover tags are stripped and runs of 3+ newlines collapse
// to exactly 2.
func (n *Normalizer) Normalize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := n.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("htmlmd: failed to convert to Markdown: %w", err)
	}

	markdown = leftoverTags.ReplaceAllString(markdown, "")
	markdown = excessNewline.ReplaceAllString(markdown, "\n\n")

	return strings.TrimSpace(markdown), nil
}
