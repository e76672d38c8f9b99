package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	mywebsite "github.com/MostafaKMilly/my-website"
)

func main() {
	cfg := mywebsite.SiteConfig{
		Name:        mywebsite.EnvOr("SITE_NAME", "Mostafa Milly"),
		URL:         mywebsite.EnvOr("SITE_URL", "http://localhost:8080"),
		Description: mywebsite.EnvOr("SITE_DESCRIPTION", "Writing about web development, Go, and whatever else I am building."),
		Author:      mywebsite.EnvOr("SITE_AUTHOR", "Mostafa Milly"),
		Addr:        mywebsite.EnvOr("ADDR", ":8080"),
		ContentDir:  mywebsite.EnvOr("CONTENT_DIR", "content/blog"),

		AnalyticsEnabled:      envBool("ANALYTICS_ENABLED", true),
		AnalyticsDatabasePath: mywebsite.EnvOr("ANALYTICS_DB_PATH", "data/analytics.db"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CookieSecure:  envBool("COOKIE_SECURE", false),
		WatchContent:  envBool("WATCH_CONTENT", true),
	}
	if cfg.AdminPassword != "" {
		cfg.SessionSecret = mywebsite.MustEnv("SESSION_SECRET")
	}

	app := mywebsite.New(cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		if err := app.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
		os.Exit(0)
	}()

	if err := app.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
