package mywebsite

import (
	"path/filepath"
	"testing"

	"github.com/MostafaKMilly/my-website/analytics"
)

func registeredPaths(a *App) map[string]bool {
	paths := make(map[string]bool)
	for _, r := range a.Echo.Routes() {
		paths[r.Path] = true
	}
	return paths
}

func newAnalyticsApp(t *testing.T, adminPassword string) *App {
	t.Helper()
	a := New(SiteConfig{
		AnalyticsEnabled:      true,
		AnalyticsDatabasePath: filepath.Join(t.TempDir(), "analytics.db"),
		AdminPassword:         adminPassword,
		SessionSecret:         "test-secret",
	})
	store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	a.analyticsStore = store
	a.setupRoutes()
	return a
}

func TestAnalyticsRoutesWithoutAdminPassword(t *testing.T) {
	a := newAnalyticsApp(t, "")
	paths := registeredPaths(a)

	if !paths["/api/analytics/collect"] {
		t.Error("collect endpoint not registered")
	}
	if paths["/admin/analytics/"] {
		t.Error("dashboard registered without a working admin login")
	}
	if paths["/admin/analytics/api/stats"] {
		t.Error("stats API registered without a working admin login")
	}
}

func TestAnalyticsRoutesWithAdminPassword(t *testing.T) {
	a := newAnalyticsApp(t, "hunter2")
	paths := registeredPaths(a)

	if !paths["/api/analytics/collect"] {
		t.Error("collect endpoint not registered")
	}
	if !paths["/admin/analytics/"] {
		t.Error("dashboard missing for configured admin")
	}
	if !paths["/admin/analytics/api/stats"] {
		t.Error("stats API missing for configured admin")
	}
}
