package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fuongz/portfolio/config"
	"github.com/fuongz/portfolio/internal/content"
	"github.com/fuongz/portfolio/internal/sitemap"
	"github.com/fuongz/portfolio/internal/utils"
	"github.com/spf13/cobra"
)

var sitemapOutput string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Writes the sitemap without starting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if sitemapOutput != "" {
			f, err := os.Create(sitemapOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", sitemapOutput, err)
			}
			defer f.Close()
			out = f
		}
		return writeSitemap(appConfig, out, utils.NewWriterLogger("sitemap", cmd.ErrOrStderr(), appConfig.Log.Debug))
	},
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOutput, "output", "o", "", "file to write instead of stdout")
	rootCmd.AddCommand(sitemapCmd)
}

func writeSitemap(cfg *config.Config, w io.Writer, logger *utils.Logger) error {
	posts, err := content.NewStore(cfg.Content.Dir, logger).ListPosts()
	if err != nil {
		return err
	}

	doc, err := sitemap.Build(cfg.Site.BaseURL, sitemap.Slugs(posts))
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, doc); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	logger.LogInfo("Wrote sitemap with %d posts", len(posts))
	return nil
}
