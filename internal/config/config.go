package config

import (
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperr "guidedit/internal/errors"
	"guidedit/internal/logger"
	"guidedit/internal/model"
)

// Environment variables that override the config file.
const (
	EnvClientID     = "GUIDEDIT_CLIENT_ID"
	EnvClientSecret = "GUIDEDIT_CLIENT_SECRET"
	EnvToken        = "GITHUB_TOKEN"
)

// Config is the user's configuration.
type Config struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	// Token is a personal access token; when set the browser login is skipped.
	Token string `yaml:"token,omitempty"`

	Upstream   Upstream `yaml:"upstream"`
	BaseBranch string   `yaml:"base_branch"`
	AppURL     string   `yaml:"app_url"` // GitHub App install page
	APIURL     string   `yaml:"api_url,omitempty"`

	LogPath string `yaml:"log_path"`
	Debug   bool   `yaml:"debug"`
}

// Upstream is the canonical repository contributions go to.
type Upstream struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

// Repo returns the upstream as a model.Repo.
func (u Upstream) Repo() model.Repo {
	return model.Repo{Owner: u.Owner, Name: u.Name}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		RedirectURL: "http://localhost:8000/editor",
		Upstream:    Upstream{Owner: "cpinitiative", Name: "usaco-guide"},
		BaseBranch:  "master",
		AppURL:      "https://github.com/apps/usaco-guide-editor",
		LogPath:     logger.DefaultPath,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/guidedit/config.yaml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "guidedit", "config.yaml"), nil
}

// Load reads path on top of the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperr.ConfigLoadFailed(path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, apperr.ConfigLoadFailed(path, err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
}

// fillDefaults restores defaults for keys the file set to empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.RedirectURL == "" {
		c.RedirectURL = d.RedirectURL
	}
	if c.Upstream.Owner == "" {
		c.Upstream.Owner = d.Upstream.Owner
	}
	if c.Upstream.Name == "" {
		c.Upstream.Name = d.Upstream.Name
	}
	if c.BaseBranch == "" {
		c.BaseBranch = d.BaseBranch
	}
	if c.AppURL == "" {
		c.AppURL = d.AppURL
	}
	if c.LogPath == "" {
		c.LogPath = d.LogPath
	}
}

// Validate checks values that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	u, err := url.Parse(c.RedirectURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperr.ConfigInvalid("redirect_url must be an absolute URL, got " + c.RedirectURL)
	}
	if c.APIURL != "" {
		if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" {
			return apperr.ConfigInvalid("api_url must be an absolute URL, got " + c.APIURL)
		}
	}
	return nil
}

// Save writes cfg to path, creating the directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
