package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port int
		Mode string
	}
	Site struct {
		BaseURL string
		Title   string
	}
	Profile struct {
		Name     string
		Handle   string
		Tagline  string
		Location string
		Work     struct {
			Name string
			URL  string
		}
		Contacts     map[string]string
		SideProjects []SideProject
	}
	GitHub struct {
		APIURL  string
		Account string
		Timeout string
	}
	Projects struct {
		Names []string
	}
	Boilerplates struct {
		Org      string
		Contains string
	}
	Content struct {
		Dir string
	}
	Log struct {
		Dir   string
		Debug bool
	}
}

type SideProject struct {
	Name        string
	Description string
	URL         string
}

// Source owns the viper instance behind a Config so it can be re-read on change.
type Source struct {
	v    *viper.Viper
	path string
}

// NewSource prepares a config source. An empty path searches ./config.yaml and
// ./config/config.yaml; a missing file is fine unless the path was given explicitly.
func NewSource(path string) (*Source, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// Default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("site.baseurl", "")
	v.SetDefault("site.title", "Portfolio")
	v.SetDefault("github.apiurl", "https://api.github.com")
	v.SetDefault("github.account", "")
	v.SetDefault("github.timeout", "10s")
	v.SetDefault("projects.names", []string{})
	v.SetDefault("boilerplates.org", "")
	v.SetDefault("boilerplates.contains", "-template")
	v.SetDefault("content.dir", "content/posts")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.debug", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("site.baseurl", "ROOT_URL", "PORTFOLIO_SITE_BASEURL"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Source{v: v, path: path}, nil
}

// ConfigFileUsed returns the file the source was read from, "" when running on defaults.
func (s *Source) ConfigFileUsed() string {
	return s.v.ConfigFileUsed()
}

func (s *Source) Load() (*Config, error) {
	var config Config
	if err := s.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// OnChange re-reads the config whenever the file changes and hands valid results to fn.
// Invalid edits are reported through onErr and the previous config stays in effect.
func (s *Source) OnChange(fn func(*Config), onErr func(error)) {
	if s.v.ConfigFileUsed() == "" {
		return
	}

	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		config, err := s.Load()
		if err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		fn(config)
	})
	s.v.WatchConfig()
}

func LoadConfig(path string) (*Config, error) {
	source, err := NewSource(path)
	if err != nil {
		return nil, err
	}
	return source.Load()
}

func (c *Config) Validate() error {
	switch c.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("server.mode must be one of %s, %s or %s, got %q", gin.DebugMode, gin.ReleaseMode, gin.TestMode, c.Server.Mode)
	}
	if c.Site.BaseURL == "" {
		return errors.New("site.baseurl is required (set ROOT_URL)")
	}
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("site.baseurl must be an absolute http(s) URL, got %q", c.Site.BaseURL)
	}
	if c.GitHub.Account == "" {
		return errors.New("github.account is required")
	}
	for i, p := range c.Profile.SideProjects {
		if p.Name == "" || p.URL == "" {
			return fmt.Errorf("profile.sideprojects[%d] needs a name and url", i)
		}
	}
	return nil
}

func (c *Config) FetchTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.GitHub.Timeout)
	if err != nil || timeout <= 0 {
		return 10 * time.Second
	}
	return timeout
}
