package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fuongz/portfolio/internal/utils"
	"github.com/fuongz/portfolio/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

type Options struct {
	Port         int
	Site         Site
	Projects     ProjectSource
	Boilerplates ProjectSource
	Posts        PostSource
	Logger       *utils.Logger
}

func NewServer(opts Options) *Server {
	router := gin.Default()
	router.SetHTMLTemplate(web.MustTemplates())
	router.Use(RequestID())

	handler := NewHandler(opts.Site, opts.Projects, opts.Boilerplates, opts.Posts, opts.Logger)

	// Pages
	router.GET("/", handler.Home)
	router.GET("/partials/projects", handler.ProjectsPartial)
	router.GET("/posts", handler.ListPosts)
	router.GET("/posts/:slug", handler.GetPost)
	router.GET("/sitemap.xml", handler.Sitemap)
	router.GET("/robots.txt", handler.Robots)
	router.NoRoute(handler.NotFound)

	api := router.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		api.GET("/projects", handler.GetProjects)
		api.GET("/boilerplates", handler.GetBoilerplates)
	}

	return &Server{
		router: router,
		port:   defaultPort(opts.Port),
	}
}

func defaultPort(p int) int {
	if p <= 0 {
		return 8080
	}
	return p
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
