package main

import (
	"fmt"
	"os"

	"github.com/fuongz/portfolio/config"
	"github.com/fuongz/portfolio/internal/api"
	"github.com/fuongz/portfolio/internal/projects"
	"github.com/spf13/cobra"
)

var cfgFile string

var (
	configSource *config.Source
	appConfig    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal profile, projects and posts site",
	Long: `portfolio serves a profile page with a project list pulled from the
GitHub API, a Markdown post collection, and a sitemap for search engines.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
}

func initializeConfig() error {
	source, err := config.NewSource(cfgFile)
	if err != nil {
		return err
	}

	cfg, err := source.Load()
	if err != nil {
		return err
	}

	configSource = source
	appConfig = cfg
	return nil
}

func siteFromConfig(cfg *config.Config) api.Site {
	return api.Site{
		BaseURL: cfg.Site.BaseURL,
		Title:   cfg.Site.Title,
		Profile: api.Profile{
			Name:         cfg.Profile.Name,
			Handle:       cfg.Profile.Handle,
			Tagline:      cfg.Profile.Tagline,
			Location:     cfg.Profile.Location,
			WorkName:     cfg.Profile.Work.Name,
			WorkURL:      cfg.Profile.Work.URL,
			Contacts:     api.ContactLinks(cfg.Profile.Contacts),
			Email:        api.ContactEmail(cfg.Profile.Contacts),
			SideProjects: sideProjects(cfg.Profile.SideProjects),
		},
	}
}

func sideProjects(configured []config.SideProject) []api.SideProject {
	projects := make([]api.SideProject, 0, len(configured))
	for _, p := range configured {
		projects = append(projects, api.SideProject{Name: p.Name, Description: p.Description, URL: p.URL})
	}
	return projects
}

func projectSelection(cfg *config.Config) projects.Selection {
	return projects.Selection{AllowList: cfg.Projects.Names}
}

func boilerplateSelection(cfg *config.Config) projects.Selection {
	return projects.Selection{Contains: cfg.Boilerplates.Contains}
}
