package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/fuongz/portfolio/internal/models"
)

// ContentType is the media type the sitemap is served with.
const ContentType = "text/xml"

// Build renders the urlset for baseURL: the root, the post index, then one entry per
// slug in the order given. Text is XML-escaped by the encoder.
func Build(baseURL string, slugs []string) (string, error) {
	doc := New(baseURL, slugs)

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode sitemap: %w", err)
	}
	buf.WriteByte('\n')

	return buf.String(), nil
}

// New assembles the sitemap document without encoding it.
func New(baseURL string, slugs []string) models.Sitemap {
	base := strings.TrimRight(baseURL, "/")

	urls := make([]models.URL, 0, len(slugs)+2)
	urls = append(urls,
		models.URL{Loc: baseURL},
		models.URL{Loc: base + "/posts"},
	)
	for _, slug := range slugs {
		urls = append(urls, models.URL{Loc: base + "/posts/" + slug})
	}

	return models.Sitemap{
		XMLNS: models.SitemapNamespace,
		URLs:  urls,
	}
}

// Slugs extracts the slugs from posts, keeping their order.
func Slugs(posts []models.PostSummary) []string {
	slugs := make([]string, 0, len(posts))
	for _, post := range posts {
		slugs = append(slugs, post.Slug)
	}
	return slugs
}

// Parse decodes a sitemap document.
func Parse(data []byte) (*models.Sitemap, error) {
	var doc models.Sitemap
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}
	return &doc, nil
}
