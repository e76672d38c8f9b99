// Package mywebsite is a personal technical blog server built with Go, Echo,
// and templ. Articles are Markdown/MDX files with YAML frontmatter, loaded
// into memory and hot-reloaded on change; pages carry OpenGraph meta tags
// whose preview image URLs come from the ogimage package.
package mywebsite

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MostafaKMilly/my-website/analytics"
	"github.com/MostafaKMilly/my-website/content"
	"github.com/MostafaKMilly/my-website/ogimage"
)

const (
	loginWindow     = time.Minute
	retentionDays   = 365
	cleanupInterval = 24 * time.Hour
)

// App is the central application. It wires together the content library,
// handlers, middleware, and the analytics store.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Library *content.Library

	ogTemplate     ogimage.Template
	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
	watchCancel    context.CancelFunc
}

// New creates the App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:     cfg,
		Echo:       echo.New(),
		ogTemplate: ogimage.Default,
		staticDir:  "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start loads the content library, starts the watcher and analytics, sets up
// middleware and routes, and runs the server until it shuts down.
func (a *App) Start() error {
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("mywebsite: SessionSecret is required when AdminPassword is set")
	}

	lib, err := content.Load(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("mywebsite: load content: %w", err)
	}
	a.Library = lib

	if a.Config.WatchContent {
		ctx, cancel := context.WithCancel(context.Background())
		a.watchCancel = cancel
		go func() {
			if err := lib.Watch(ctx); err != nil && err != context.Canceled {
				log.Printf("mywebsite: content watcher stopped: %v", err)
			}
		}()
	}

	a.loginLimiter = NewLoginLimiter(5, loginWindow)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("mywebsite: init analytics: %w", err)
		}
		a.analyticsStore = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("mywebsite: init analytics salt: %w", err)
		}
		stopCleanup := store.StartCleanupScheduler(retentionDays, cleanupInterval)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/analytics.js", echo.WrapHandler(embeddedAssetHandler()))
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	if a.Config.AdminPassword != "" {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/post/:slug/", a.handleAdminPost)
		e.GET("/admin/images/", a.handleImageList)
		e.POST("/admin/images/upload/", a.handleImageUpload)
		e.DELETE("/admin/images/:filename/", a.handleImageDelete)
	}

	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		handler := analytics.NewHandler(a.analyticsStore)
		handler.RegisterCollect(e)

		// The dashboard needs a working admin login; without a password
		// there is no session middleware and IsAdmin can never pass.
		if a.Config.AdminPassword != "" {
			adminOnly := func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					if !IsAdmin(c) {
						return c.Redirect(http.StatusSeeOther, "/admin/")
					}
					return next(c)
				}
			}
			handler.RegisterAdmin(e, adminOnly)
		}
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.watchCancel != nil {
		a.watchCancel()
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("mywebsite: required environment variable %s is not set", key)
	}
	return v
}
