package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "projects.html", "posts.html", "post.html", "error.html", "header", "footer", "project-card"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestProjectsTemplateEmpty(t *testing.T) {
	tmpl := MustTemplates()

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "projects.html", map[string]interface{}{"Projects": nil}))
	assert.Contains(t, buf.String(), "No projects to show right now.")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 5, 2024", formatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", formatDate(time.Time{}))
}

func TestDeref(t *testing.T) {
	s := "MIT"
	assert.Equal(t, "MIT", deref(&s))
	assert.Equal(t, "", deref(nil))
}
