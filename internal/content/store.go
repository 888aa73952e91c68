package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/fuongz/portfolio/internal/models"
	"github.com/fuongz/portfolio/internal/utils"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const postExt = ".md"

var ErrPostNotFound = errors.New("post not found")

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Draft   bool     `yaml:"draft"`
}

// Store reads posts from a flat directory of Markdown files, <dir>/<slug>.md.
// Nothing is cached; every call reads the directory again.
type Store struct {
	dir    string
	md     goldmark.Markdown
	logger *utils.Logger
}

func NewStore(dir string, logger *utils.Logger) *Store {
	return &Store{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		logger: logger,
	}
}

func (s *Store) Dir() string {
	return s.dir
}

// ListPosts enumerates published posts, newest first. Undated posts sort last and ties
// fall back to slug order. A missing directory is an empty collection.
func (s *Store) ListPosts() ([]models.PostSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.LogDebug("Content directory %s not found, no posts", s.dir)
			return []models.PostSummary{}, nil
		}
		return nil, fmt.Errorf("failed to read content directory %s: %w", s.dir, err)
	}

	posts := make([]models.PostSummary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != postExt {
			continue
		}
		slug := strings.TrimSuffix(name, postExt)
		if !validSlug(slug) {
			continue
		}

		summary, _, draft, err := s.read(slug, filepath.Join(s.dir, name), false)
		if err != nil {
			return nil, err
		}
		if draft {
			s.logger.LogDebug("Skipping draft %s", slug)
			continue
		}
		posts = append(posts, summary)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Date, posts[j].Date
		switch {
		case a.Equal(b):
			return posts[i].Slug < posts[j].Slug
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})

	return posts, nil
}

// GetPost loads one published post and renders its body.
func (s *Store) GetPost(slug string) (*models.Post, error) {
	if !validSlug(slug) {
		return nil, ErrPostNotFound
	}

	path := filepath.Join(s.dir, slug+postExt)
	summary, body, draft, err := s.read(slug, path, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if draft {
		return nil, ErrPostNotFound
	}

	return &models.Post{PostSummary: summary, ContentHTML: body}, nil
}

func (s *Store) read(slug, path string, render bool) (models.PostSummary, template.HTML, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.PostSummary{}, "", false, fmt.Errorf("failed to read post %s: %w", path, err)
	}

	var fm frontMatter
	rest, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		s.logger.LogError("Could not parse front matter for %s: %v. Treating as pure markdown.", path, err)
		rest = data
		fm = frontMatter{}
	}

	summary := models.PostSummary{
		Slug:    slug,
		Title:   fm.Title,
		Date:    parseDate(fm.Date),
		Tags:    fm.Tags,
		Summary: fm.Summary,
	}
	if summary.Title == "" {
		summary.Title = titleFromSlug(slug)
	}
	if summary.Tags == nil {
		summary.Tags = []string{}
	}
	if fm.Date != "" && summary.Date.IsZero() {
		s.logger.LogError("Could not parse date %q for %s. Use YYYY-MM-DD or RFC3339.", fm.Date, path)
	}

	if !render {
		return summary, "", fm.Draft, nil
	}

	var buf bytes.Buffer
	if err := s.md.Convert(rest, &buf); err != nil {
		return models.PostSummary{}, "", false, fmt.Errorf("failed to render post %s: %w", path, err)
	}
	return summary, template.HTML(buf.String()), fm.Draft, nil
}

func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}

func validSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, ".") {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}
