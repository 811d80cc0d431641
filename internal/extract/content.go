package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/sources"
)

// ContentExtractor turns fetched article HTML into an Article: title,
// paragraph and list-item text, and the standard metadata tags.
type ContentExtractor struct{}

// NewContentExtractor creates a content extractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Extract parses htmlContent. It returns an error only on unparsable
// HTML; an article with empty content is returned as-is and left to
// the caller to treat as fatal.
func (e *ContentExtractor) Extract(htmlContent, requestedURL, finalURL string) (*model.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var parts []string
	doc.Find("p, li").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	article := &model.Article{
		URL:         requestedURL,
		FinalURL:    finalURL,
		Domain:      sources.Domain(finalURL),
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Author:      metaContent(doc, `meta[name="author"]`),
		PublishedAt: metaContent(doc, `meta[property="article:published_time"]`),
		ImageURL:    metaContent(doc, `meta[property="og:image"]`),
		Content:     strings.Join(parts, " "),
	}

	if article.Domain == "" {
		article.Domain = sources.Domain(requestedURL)
	}

	return article, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
