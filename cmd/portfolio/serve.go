package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuongz/portfolio/config"
	"github.com/fuongz/portfolio/internal/api"
	"github.com/fuongz/portfolio/internal/content"
	"github.com/fuongz/portfolio/internal/github"
	"github.com/fuongz/portfolio/internal/projects"
	"github.com/fuongz/portfolio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site",
	Long: `The serve command starts the web server. Projects are fetched from the
GitHub API whenever a visitor loads the page; posts and the sitemap are read from
the content directory on every request. Edits to the config file's project lists
are picked up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Server.Port = serverPort
		}
		return runServe(appConfig, configSource)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "port to serve the site on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cfg *config.Config, source *config.Source) error {
	logger, err := utils.NewLogger("server", cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer logger.Close()

	if source.ConfigFileUsed() != "" {
		logger.LogInfo("Using config file: %s", source.ConfigFileUsed())
	}

	gin.SetMode(cfg.Server.Mode)

	client := github.NewClient(cfg.GitHub.APIURL, cfg.FetchTimeout())
	projectLoader := projects.NewLoader(client, github.User(cfg.GitHub.Account), projectSelection(cfg), cfg.FetchTimeout(), logger)

	opts := api.Options{
		Port:     cfg.Server.Port,
		Site:     siteFromConfig(cfg),
		Projects: projectLoader,
		Posts:    content.NewStore(cfg.Content.Dir, logger),
		Logger:   logger,
	}

	var boilerplateLoader *projects.Loader
	if cfg.Boilerplates.Org != "" {
		boilerplateLoader = projects.NewLoader(client, github.Org(cfg.Boilerplates.Org), boilerplateSelection(cfg), cfg.FetchTimeout(), logger)
		opts.Boilerplates = boilerplateLoader
	}

	source.OnChange(func(updated *config.Config) {
		projectLoader.SetSelection(projectSelection(updated))
		if boilerplateLoader != nil {
			boilerplateLoader.SetSelection(boilerplateSelection(updated))
		}
		logger.LogInfo("Config reloaded: %d allow-listed projects", len(updated.Projects.Names))
	}, func(err error) {
		logger.LogError("Ignoring config change: %v", err)
	})

	server := api.NewServer(opts)

	go func() {
		logger.LogInfo("Starting server on port %d for %s", cfg.Server.Port, cfg.Site.BaseURL)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	waitForShutdown(server, logger)
	return nil
}

func waitForShutdown(server *api.Server, logger *utils.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.LogInfo("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("Error shutting down server: %v", err)
		return
	}
	logger.LogInfo("Server shut down gracefully")
}
