package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ROOT_URL", "")
	t.Setenv("PORTFOLIO_SITE_BASEURL", "")
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	t.Run("ValidConfig", func(t *testing.T) {
		path := writeConfig(t, `
site:
  baseurl: "https://phuongphung.com"
github:
  account: "fuongz"
  timeout: "3s"
projects:
  names:
    - autofill-forms
    - newtab
profile:
  name: "Phuong Phung"
  contacts:
    github: fuongz
    email: me@example.com
  sideprojects:
    - name: PhakeApp
      description: Collection of software development tools
      url: https://phake.app
    - name: Enma
      url: https://enma.uagizo.com
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "https://phuongphung.com", cfg.Site.BaseURL)
		assert.Equal(t, "fuongz", cfg.GitHub.Account)
		assert.Equal(t, []string{"autofill-forms", "newtab"}, cfg.Projects.Names)
		assert.Equal(t, "fuongz", cfg.Profile.Contacts["github"])
		assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
		require.Len(t, cfg.Profile.SideProjects, 2)
		assert.Equal(t, SideProject{Name: "PhakeApp", Description: "Collection of software development tools", URL: "https://phake.app"}, cfg.Profile.SideProjects[0])
		assert.Empty(t, cfg.Profile.SideProjects[1].Description)

		// Default values
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "release", cfg.Server.Mode)
		assert.Equal(t, "https://api.github.com", cfg.GitHub.APIURL)
		assert.Equal(t, "-template", cfg.Boilerplates.Contains)
		assert.Equal(t, "content/posts", cfg.Content.Dir)
	})

	t.Run("BaseURLFromEnvironment", func(t *testing.T) {
		t.Setenv("ROOT_URL", "https://example.com")
		path := writeConfig(t, "github:\n  account: fuongz\n")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	})

	t.Run("MissingBaseURL", func(t *testing.T) {
		path := writeConfig(t, "github:\n  account: fuongz\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "site.baseurl is required")
	})

	t.Run("RelativeBaseURL", func(t *testing.T) {
		path := writeConfig(t, "site:\n  baseurl: /blog\ngithub:\n  account: fuongz\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absolute http(s) URL")
	})

	t.Run("MissingAccount", func(t *testing.T) {
		path := writeConfig(t, "site:\n  baseurl: https://example.com\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "github.account is required")
	})

	t.Run("UnknownMode", func(t *testing.T) {
		path := writeConfig(t, "server:\n  mode: production\nsite:\n  baseurl: https://example.com\ngithub:\n  account: fuongz\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `server.mode must be one of debug, release or test, got "production"`)
	})

	t.Run("KnownModes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			path := writeConfig(t, "server:\n  mode: "+mode+"\nsite:\n  baseurl: https://example.com\ngithub:\n  account: fuongz\n")

			cfg, err := LoadConfig(path)
			require.NoError(t, err, mode)
			assert.Equal(t, mode, cfg.Server.Mode)
		}
	})

	t.Run("SideProjectWithoutURL", func(t *testing.T) {
		path := writeConfig(t, "site:\n  baseurl: https://example.com\ngithub:\n  account: fuongz\nprofile:\n  sideprojects:\n    - name: PhakeApp\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profile.sideprojects[0] needs a name and url")
	})

	t.Run("ExplicitPathMissing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestFetchTimeoutFallback(t *testing.T) {
	var cfg Config
	cfg.GitHub.Timeout = "soon"
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())

	cfg.GitHub.Timeout = "-1s"
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
}
