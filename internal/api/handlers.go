package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fuongz/portfolio/internal/content"
	"github.com/fuongz/portfolio/internal/models"
	"github.com/fuongz/portfolio/internal/projects"
	"github.com/fuongz/portfolio/internal/sitemap"
	"github.com/fuongz/portfolio/internal/utils"
	"github.com/gin-gonic/gin"
)

// ProjectSource runs the project fetch for a page request. *projects.Loader satisfies it.
type ProjectSource interface {
	Load(ctx context.Context) (projects.Snapshot, error)
}

// PostSource enumerates the local post collection. *content.Store satisfies it.
type PostSource interface {
	ListPosts() ([]models.PostSummary, error)
	GetPost(slug string) (*models.Post, error)
}

type Handler struct {
	site         Site
	projects     ProjectSource
	boilerplates ProjectSource
	posts        PostSource
	logger       *utils.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type page struct {
	Site      Site
	PageTitle string
	Canonical string
	Year      int
}

func NewHandler(site Site, projectSource, boilerplates ProjectSource, posts PostSource, logger *utils.Logger) *Handler {
	return &Handler{
		site:         site,
		projects:     projectSource,
		boilerplates: boilerplates,
		posts:        posts,
		logger:       logger,
	}
}

func (h *Handler) newPage(title, path string) page {
	return page{
		Site:      h.site,
		PageTitle: title,
		Canonical: strings.TrimRight(h.site.BaseURL, "/") + path,
		Year:      time.Now().Year(),
	}
}

// Home renders the profile. Projects are filled in by the page after first paint.
func (h *Handler) Home(c *gin.Context) {
	p := h.newPage("", "")
	p.Canonical = h.site.BaseURL
	c.HTML(http.StatusOK, "index.html", p)
}

// ProjectsPartial runs the project fetch and renders the cards fragment.
func (h *Handler) ProjectsPartial(c *gin.Context) {
	snapshot := h.loadProjects(c, h.projects)

	data := gin.H{
		"State":    snapshot.State,
		"Projects": snapshot.Projects,
	}
	if h.boilerplates != nil {
		data["Boilerplates"] = h.loadProjects(c, h.boilerplates).Projects
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "projects.html", data)
}

func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.ListPosts()
	if err != nil {
		h.logger.LogError("Failed to list posts: %v", err)
		h.renderError(c, http.StatusInternalServerError, "Posts are unavailable right now.")
		return
	}

	c.HTML(http.StatusOK, "posts.html", struct {
		page
		Posts []models.PostSummary
	}{h.newPage("Posts", "/posts"), posts})
}

func (h *Handler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	post, err := h.posts.GetPost(slug)
	if errors.Is(err, content.ErrPostNotFound) {
		h.renderError(c, http.StatusNotFound, "Post not found.")
		return
	}
	if err != nil {
		h.logger.LogError("Failed to load post %s: %v", slug, err)
		h.renderError(c, http.StatusInternalServerError, "This post is unavailable right now.")
		return
	}

	c.HTML(http.StatusOK, "post.html", struct {
		page
		Post *models.Post
	}{h.newPage(post.Title, "/posts/"+post.Slug), post})
}

// Sitemap enumerates the posts on every request and writes the document as is.
func (h *Handler) Sitemap(c *gin.Context) {
	posts, err := h.posts.ListPosts()
	if err != nil {
		h.logger.LogError("Failed to list posts for sitemap: %v", err)
		c.String(http.StatusInternalServerError, "failed to build sitemap")
		return
	}

	doc, err := sitemap.Build(h.site.BaseURL, sitemap.Slugs(posts))
	if err != nil {
		h.logger.LogError("Failed to build sitemap: %v", err)
		c.String(http.StatusInternalServerError, "failed to build sitemap")
		return
	}

	c.Data(http.StatusOK, sitemap.ContentType, []byte(doc))
}

func (h *Handler) Robots(c *gin.Context) {
	c.String(http.StatusOK, fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", strings.TrimRight(h.site.BaseURL, "/")))
}

func (h *Handler) GetProjects(c *gin.Context) {
	h.writeSnapshot(c, h.loadProjects(c, h.projects))
}

func (h *Handler) GetBoilerplates(c *gin.Context) {
	if h.boilerplates == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Boilerplates are not configured"})
		return
	}
	h.writeSnapshot(c, h.loadProjects(c, h.boilerplates))
}

func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	h.renderError(c, http.StatusNotFound, "Page not found.")
}

func (h *Handler) loadProjects(c *gin.Context, source ProjectSource) projects.Snapshot {
	snapshot, err := source.Load(c.Request.Context())
	if err != nil {
		h.logger.LogDebug("Project load for request %s ended early: %v", c.GetString("requestID"), err)
	}
	if snapshot.Projects == nil {
		snapshot.Projects = []models.Project{}
	}
	return snapshot
}

func (h *Handler) writeSnapshot(c *gin.Context, snapshot projects.Snapshot) {
	status := http.StatusOK
	if snapshot.State == projects.StateFailure {
		status = http.StatusBadGateway
	}
	c.JSON(status, snapshot)
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", struct {
		page
		Status  int
		Message string
	}{h.newPage(http.StatusText(status), c.Request.URL.Path), status, message})
}
