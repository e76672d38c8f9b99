package analytics

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists visits in a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("analytics: open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("analytics: enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("analytics: ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			browser TEXT NOT NULL,
			os TEXT NOT NULL,
			device TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT,
			screen_size TEXT,
			timestamp DATETIME NOT NULL,
			duration_sec INTEGER DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS bot_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bot_name TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			path TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE INDEX IF NOT EXISTS idx_bot_visits_timestamp ON bot_visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_bot_visits_name ON bot_visits(bot_name);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// SaveVisit stores a new visit.
func (s *Store) SaveVisit(v *Visit) error {
	_, err := s.db.Exec(`
		INSERT INTO visits (visitor_id, session_id, ip_hash, browser, os, device, path, referrer, screen_size, timestamp, duration_sec)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.VisitorID, v.SessionID, v.IPHash, v.Browser, v.OS, v.Device, v.Path, v.Referrer, v.ScreenSize, v.Timestamp.UTC(), v.DurationSec)
	return err
}

// UpdateVisitDuration sets the duration on the most recent visit for a visitor+path.
func (s *Store) UpdateVisitDuration(visitorID, path string, durationSec int) error {
	_, err := s.db.Exec(`
		UPDATE visits SET duration_sec = ?
		WHERE id = (
			SELECT id FROM visits
			WHERE visitor_id = ? AND path = ?
			ORDER BY timestamp DESC LIMIT 1
		)
	`, durationSec, visitorID, path)
	return err
}

// SaveBotVisit stores a new crawler visit.
func (s *Store) SaveBotVisit(bv *BotVisit) error {
	_, err := s.db.Exec(`
		INSERT INTO bot_visits (bot_name, ip_hash, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, bv.BotName, bv.IPHash, bv.UserAgent, bv.Path, bv.Timestamp.UTC())
	return err
}

func (s *Store) queryDimension(query string, from, to time.Time) ([]DimensionStat, error) {
	rows, err := s.db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DimensionStat{}
	for rows.Next() {
		var d DimensionStat
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetStats returns aggregated statistics for the given time range.
func (s *Store) GetStats(from, to time.Time) (*Stats, error) {
	stats := &Stats{
		Period:        from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopPages:      []PageStat{},
		BrowserStats:  []DimensionStat{},
		OSStats:       []DimensionStat{},
		DeviceStats:   []DimensionStat{},
		ReferrerStats: []DimensionStat{},
		DailyViews:    []DailyView{},
	}

	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM visits WHERE timestamp >= ? AND timestamp < ?", from, to,
	).Scan(&stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("analytics: count views: %w", err)
	}

	err = s.db.QueryRow(
		"SELECT COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ? AND timestamp < ?", from, to,
	).Scan(&stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("analytics: count unique visitors: %w", err)
	}

	var avg sql.NullFloat64
	err = s.db.QueryRow(
		"SELECT AVG(duration_sec) FROM visits WHERE timestamp >= ? AND timestamp < ? AND duration_sec > 0", from, to,
	).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("analytics: avg duration: %w", err)
	}
	if avg.Valid {
		stats.AvgDuration = int(avg.Float64)
	}

	pageRows, err := s.db.Query(`
		SELECT path, COUNT(*) AS views FROM visits
		WHERE timestamp >= ? AND timestamp < ?
		GROUP BY path ORDER BY views DESC LIMIT 10
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: top pages: %w", err)
	}
	defer pageRows.Close()
	for pageRows.Next() {
		var p PageStat
		if err := pageRows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("analytics: top pages: %w", err)
		}
		stats.TopPages = append(stats.TopPages, p)
	}
	if err := pageRows.Err(); err != nil {
		return nil, fmt.Errorf("analytics: top pages: %w", err)
	}

	dims := []struct {
		column string
		dest   *[]DimensionStat
	}{
		{"browser", &stats.BrowserStats},
		{"os", &stats.OSStats},
		{"device", &stats.DeviceStats},
		{"referrer", &stats.ReferrerStats},
	}
	for _, d := range dims {
		q := fmt.Sprintf(`
			SELECT %s, COUNT(*) AS count FROM visits
			WHERE timestamp >= ? AND timestamp < ?
			GROUP BY %s ORDER BY count DESC LIMIT 10
		`, d.column, d.column)
		result, err := s.queryDimension(q, from, to)
		if err != nil {
			return nil, fmt.Errorf("analytics: %s stats: %w", d.column, err)
		}
		*d.dest = result
	}

	dailyRows, err := s.db.Query(`
		SELECT strftime('%Y-%m-%d', timestamp) AS day, COUNT(*) AS views FROM visits
		WHERE timestamp >= ? AND timestamp < ?
		GROUP BY day ORDER BY day
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: daily views: %w", err)
	}
	defer dailyRows.Close()
	for dailyRows.Next() {
		var v DailyView
		if err := dailyRows.Scan(&v.Date, &v.Views); err != nil {
			return nil, fmt.Errorf("analytics: daily views: %w", err)
		}
		stats.DailyViews = append(stats.DailyViews, v)
	}
	if err := dailyRows.Err(); err != nil {
		return nil, fmt.Errorf("analytics: daily views: %w", err)
	}

	return stats, nil
}

// GetBotStats returns aggregated crawler statistics for the given time range.
func (s *Store) GetBotStats(from, to time.Time) (*BotStats, error) {
	stats := &BotStats{
		Period:   from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopBots:  []DimensionStat{},
		TopPages: []PageStat{},
	}

	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM bot_visits WHERE timestamp >= ? AND timestamp < ?", from, to,
	).Scan(&stats.TotalVisits)
	if err != nil {
		return nil, fmt.Errorf("analytics: count bot visits: %w", err)
	}

	bots, err := s.queryDimension(`
		SELECT bot_name, COUNT(*) AS count FROM bot_visits
		WHERE timestamp >= ? AND timestamp < ?
		GROUP BY bot_name ORDER BY count DESC LIMIT 10
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: top bots: %w", err)
	}
	stats.TopBots = bots

	pageRows, err := s.db.Query(`
		SELECT path, COUNT(*) AS views FROM bot_visits
		WHERE timestamp >= ? AND timestamp < ?
		GROUP BY path ORDER BY views DESC LIMIT 10
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: top bot pages: %w", err)
	}
	defer pageRows.Close()
	for pageRows.Next() {
		var p PageStat
		if err := pageRows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("analytics: top bot pages: %w", err)
		}
		stats.TopPages = append(stats.TopPages, p)
	}
	return stats, pageRows.Err()
}

// GetRealtimeVisitors returns the number of unique visitors in the last 5 minutes.
func (s *Store) GetRealtimeVisitors() (int, error) {
	cutoff := time.Now().UTC().Add(-5 * time.Minute)
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ?", cutoff,
	).Scan(&count)
	return count, err
}

// CleanupOldVisits removes visits and bot visits older than the retention period.
func (s *Store) CleanupOldVisits(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	if _, err := s.db.Exec("DELETE FROM visits WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("analytics: cleanup visits: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM bot_visits WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("analytics: cleanup bot_visits: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupOldVisits(retentionDays); err != nil {
					log.Printf("analytics: cleanup: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
