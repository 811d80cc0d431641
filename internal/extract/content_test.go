package extract

import (
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Flood Relief Expanded After Record Rainfall</title>
  <meta name="author" content="A. Reporter">
  <meta property="article:published_time" content="2026-08-12T10:00:00Z">
  <meta property="og:image" content="https://news.example.com/img/flood.jpg">
  <script>var tracking = "ignore me";</script>
</head>
<body>
  <h1>Flood Relief Expanded</h1>
  <p>The government announced a relief package of $2 billion on Tuesday.</p>
  <p>   </p>
  <ul>
    <li>Over 40,000 residents were evacuated from low-lying districts.</li>
    <li>Rainfall reached 310 millimeters in 24 hours.</li>
  </ul>
  <p>Officials said recovery would take months.</p>
</body>
</html>`

func TestContentExtractor_Extract(t *testing.T) {
	extractor := NewContentExtractor()

	article, err := extractor.Extract(sampleHTML, "https://news.example.com/story", "https://www.news.example.com/story-final")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if article.Title != "Flood Relief Expanded After Record Rainfall" {
		t.Errorf("Unexpected title: %q", article.Title)
	}
	if article.Author != "A. Reporter" {
		t.Errorf("Unexpected author: %q", article.Author)
	}
	if article.PublishedAt != "2026-08-12T10:00:00Z" {
		t.Errorf("Unexpected published time: %q", article.PublishedAt)
	}
	if article.ImageURL != "https://news.example.com/img/flood.jpg" {
		t.Errorf("Unexpected image: %q", article.ImageURL)
	}
	if article.Domain != "news.example.com" {
		t.Errorf("Unexpected domain: %q", article.Domain)
	}

	expected := "The government announced a relief package of $2 billion on Tuesday. " +
		"Over 40,000 residents were evacuated from low-lying districts. " +
		"Rainfall reached 310 millimeters in 24 hours. " +
		"Officials said recovery would take months."
	if article.Content != expected {
		t.Errorf("Unexpected content:\n got: %q\nwant: %q", article.Content, expected)
	}
}

func TestContentExtractor_EmptyPage(t *testing.T) {
	extractor := NewContentExtractor()

	article, err := extractor.Extract("<html><body><div>nav only</div></body></html>", "https://example.com", "https://example.com")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if article.Content != "" {
		t.Errorf("Expected empty content, got %q", article.Content)
	}
}
