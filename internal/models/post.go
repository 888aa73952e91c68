package models

import (
	"html/template"
	"time"
)

// PostSummary identifies a post in the content collection. Slug is the URL path segment.
type PostSummary struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Tags    []string  `json:"tags"`
	Summary string    `json:"summary,omitempty"`
}

// Post is a single post with its rendered body.
type Post struct {
	PostSummary
	ContentHTML template.HTML `json:"-"`
}
