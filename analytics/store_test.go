package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	val, err := s.GetSetting("missing")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if val != "" {
		t.Errorf("missing key = %q, want empty", val)
	}

	if err := s.SetSetting("hash_salt", "abc"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting("hash_salt", "def"); err != nil {
		t.Fatalf("SetSetting upsert: %v", err)
	}
	val, err = s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if val != "def" {
		t.Errorf("setting = %q, want def", val)
	}
}

func testVisit(path, visitor string, ts time.Time) *Visit {
	return &Visit{
		VisitorID:  visitor,
		SessionID:  "sess-" + visitor,
		IPHash:     "ip-" + visitor,
		Browser:    "Firefox",
		OS:         "Linux",
		Device:     "Desktop",
		Path:       path,
		Referrer:   "Direct",
		ScreenSize: "1920x1080",
		Timestamp:  ts,
	}
}

func TestStatsAggregation(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	for _, v := range []*Visit{
		testVisit("/blog/first/", "alice", now),
		testVisit("/blog/first/", "bob", now),
		testVisit("/", "alice", now),
	} {
		if err := s.SaveVisit(v); err != nil {
			t.Fatalf("SaveVisit: %v", err)
		}
	}

	from, to := calcTimeRange(now, 7)
	stats, err := s.GetStats(from, to)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", stats.TotalViews)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if len(stats.TopPages) == 0 || stats.TopPages[0].Path != "/blog/first/" || stats.TopPages[0].Views != 2 {
		t.Errorf("unexpected top pages: %+v", stats.TopPages)
	}
	if len(stats.BrowserStats) != 1 || stats.BrowserStats[0].Name != "Firefox" {
		t.Errorf("unexpected browser stats: %+v", stats.BrowserStats)
	}
	if len(stats.DailyViews) != 1 || stats.DailyViews[0].Views != 3 {
		t.Errorf("unexpected daily views: %+v", stats.DailyViews)
	}
}

func TestUpdateVisitDuration(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	if err := s.SaveVisit(testVisit("/blog/first/", "alice", now)); err != nil {
		t.Fatalf("SaveVisit: %v", err)
	}
	if err := s.UpdateVisitDuration("alice", "/blog/first/", 42); err != nil {
		t.Fatalf("UpdateVisitDuration: %v", err)
	}

	from, to := calcTimeRange(now, 7)
	stats, err := s.GetStats(from, to)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.AvgDuration != 42 {
		t.Errorf("AvgDuration = %d, want 42", stats.AvgDuration)
	}
}

func TestBotStats(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	bv := &BotVisit{
		BotName:   "Googlebot",
		IPHash:    "ip-bot",
		UserAgent: "Mozilla/5.0 (compatible; Googlebot/2.1)",
		Path:      "/blog/first/",
		Timestamp: now,
	}
	if err := s.SaveBotVisit(bv); err != nil {
		t.Fatalf("SaveBotVisit: %v", err)
	}

	from, to := calcTimeRange(now, 7)
	stats, err := s.GetBotStats(from, to)
	if err != nil {
		t.Fatalf("GetBotStats: %v", err)
	}
	if stats.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d, want 1", stats.TotalVisits)
	}
	if len(stats.TopBots) != 1 || stats.TopBots[0].Name != "Googlebot" {
		t.Errorf("unexpected top bots: %+v", stats.TopBots)
	}
}

func TestCleanupOldVisits(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	if err := s.SaveVisit(testVisit("/old/", "alice", now.AddDate(0, 0, -400))); err != nil {
		t.Fatalf("SaveVisit: %v", err)
	}
	if err := s.SaveVisit(testVisit("/new/", "alice", now)); err != nil {
		t.Fatalf("SaveVisit: %v", err)
	}

	if err := s.CleanupOldVisits(365); err != nil {
		t.Fatalf("CleanupOldVisits: %v", err)
	}

	from, to := calcTimeRange(now, 500)
	stats, err := s.GetStats(from, to)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews after cleanup = %d, want 1", stats.TotalViews)
	}
	if len(stats.TopPages) != 1 || stats.TopPages[0].Path != "/new/" {
		t.Errorf("old visit survived cleanup: %+v", stats.TopPages)
	}
}
