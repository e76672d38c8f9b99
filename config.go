package mywebsite

import "github.com/MostafaKMilly/my-website/ogimage"

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr       string // Listen address (default ":3000")
	ContentDir string // Markdown/MDX article directory (default "content/blog")

	AnalyticsEnabled      bool   // Enable analytics (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required when the admin preview is used
	SessionSecret string // Required when the admin preview is used
	CookieSecure  bool   // Set true for HTTPS

	WatchContent bool // Reload articles on file changes (off unless set; cmd/my-website enables it by default)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithOgTemplate overrides the social preview image template.
func WithOgTemplate(tmpl ogimage.Template) Option {
	return func(a *App) {
		a.ogTemplate = tmpl
	}
}
