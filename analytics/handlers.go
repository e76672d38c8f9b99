package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the collect endpoint and the admin dashboard.
type Handler struct {
	store          *Store
	collectLimiter *throttle
}

// NewHandler creates a new analytics handler.
// The collect endpoint is rate-limited to 60 requests per IP per minute.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:          store,
		collectLimiter: newThrottle(60, time.Minute),
	}
}

// CollectRequest is the request body for the collect endpoint.
type CollectRequest struct {
	Path        string `json:"path"`
	Referrer    string `json:"referrer"`
	ScreenSize  string `json:"screen_size"`
	UserAgent   string `json:"user_agent"`
	DurationSec int    `json:"duration_sec"`
}

const (
	maxPathLen       = 2048
	maxReferrerLen   = 2048
	maxScreenSizeLen = 32
	maxUserAgentLen  = 512
	maxDurationSec   = 86400 // 24 hours
)

func validateCollectRequest(req *CollectRequest) error {
	if len(req.Path) > maxPathLen {
		return fmt.Errorf("path exceeds maximum length of %d", maxPathLen)
	}
	if len(req.Referrer) > maxReferrerLen {
		return fmt.Errorf("referrer exceeds maximum length of %d", maxReferrerLen)
	}
	if len(req.ScreenSize) > maxScreenSizeLen {
		return fmt.Errorf("screen_size exceeds maximum length of %d", maxScreenSizeLen)
	}
	if len(req.UserAgent) > maxUserAgentLen {
		return fmt.Errorf("user_agent exceeds maximum length of %d", maxUserAgentLen)
	}
	if req.DurationSec < 0 {
		return fmt.Errorf("duration_sec must not be negative")
	}
	if req.DurationSec > maxDurationSec {
		return fmt.Errorf("duration_sec exceeds maximum of %d", maxDurationSec)
	}
	return nil
}

// Collect handles incoming analytics beacons from the client script.
func (h *Handler) Collect(c echo.Context) error {
	// Rate limit by IP to prevent analytics flooding.
	if !h.collectLimiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}

	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := validateCollectRequest(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.Request().UserAgent()
	}
	ip := c.RealIP()

	if IsBot(userAgent) {
		botVisit := &BotVisit{
			BotName:   ExtractBotName(userAgent),
			IPHash:    HashIP(ip),
			UserAgent: userAgent,
			Path:      req.Path,
			Timestamp: time.Now().UTC(),
		}
		if err := h.store.SaveBotVisit(botVisit); err != nil {
			c.Logger().Errorf("save bot visit: %v", err)
		}
		return c.NoContent(http.StatusNoContent)
	}

	visitorID := GenerateVisitorID(ip, userAgent)

	// A nonzero duration means this is an unload beacon. Update the
	// existing visit instead of creating a duplicate row.
	if req.DurationSec > 0 {
		if err := h.store.UpdateVisitDuration(visitorID, req.Path, req.DurationSec); err != nil {
			c.Logger().Errorf("update visit duration: %v", err)
		}
		return c.NoContent(http.StatusNoContent)
	}

	browser, os, device := ParseUserAgent(userAgent)

	visit := &Visit{
		VisitorID:   visitorID,
		SessionID:   generateSessionID(visitorID),
		IPHash:      HashIP(ip),
		Browser:     browser,
		OS:          os,
		Device:      device,
		Path:        req.Path,
		Referrer:    CleanReferrer(req.Referrer),
		ScreenSize:  req.ScreenSize,
		Timestamp:   time.Now().UTC(),
		DurationSec: req.DurationSec,
	}
	if err := h.store.SaveVisit(visit); err != nil {
		c.Logger().Errorf("save visit: %v", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// StatsResponse is the JSON response for the stats endpoint.
type StatsResponse struct {
	Stats      *Stats `json:"stats"`
	Realtime   int    `json:"realtime_visitors"`
	PeriodDays int    `json:"period_days"`
}

// GetStats returns visit statistics as JSON.
func (h *Handler) GetStats(c echo.Context) error {
	_, days := parsePeriod(c.QueryParam("period"))

	from, to := calcTimeRange(time.Now().UTC(), days)
	stats, err := h.store.GetStats(from, to)
	if err != nil {
		c.Logger().Errorf("get stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	realtime, _ := h.store.GetRealtimeVisitors()

	return c.JSON(http.StatusOK, StatsResponse{
		Stats:      stats,
		Realtime:   realtime,
		PeriodDays: days,
	})
}

// BotStatsResponse is the JSON response for the bot stats endpoint.
type BotStatsResponse struct {
	Stats      *BotStats `json:"stats"`
	PeriodDays int       `json:"period_days"`
}

// GetBotStats returns crawler statistics as JSON.
func (h *Handler) GetBotStats(c echo.Context) error {
	_, days := parsePeriod(c.QueryParam("period"))

	from, to := calcTimeRange(time.Now().UTC(), days)
	stats, err := h.store.GetBotStats(from, to)
	if err != nil {
		c.Logger().Errorf("get bot stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, BotStatsResponse{
		Stats:      stats,
		PeriodDays: days,
	})
}

// Dashboard renders the server-side analytics dashboard.
func (h *Handler) Dashboard(c echo.Context) error {
	period, days := parsePeriod(c.QueryParam("period"))

	from, to := calcTimeRange(time.Now().UTC(), days)
	stats, err := h.store.GetStats(from, to)
	if err != nil {
		c.Logger().Errorf("dashboard stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	botStats, err := h.store.GetBotStats(from, to)
	if err != nil {
		c.Logger().Errorf("dashboard bot stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	realtime, _ := h.store.GetRealtimeVisitors()

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return dashboardPage(period, stats, botStats, realtime).Render(c.Request().Context(), c.Response())
}

// parsePeriod maps the period query parameter to a day count.
func parsePeriod(period string) (string, int) {
	switch period {
	case "today":
		return period, 1
	case "week":
		return period, 7
	case "month":
		return period, 30
	case "year":
		return period, 365
	default:
		return "week", 7
	}
}

// calcTimeRange returns the from/to bounds for a trailing period of days.
// A single day means the trailing 24 hours ending now, not two calendar
// days around midnight.
func calcTimeRange(now time.Time, days int) (time.Time, time.Time) {
	if days == 1 {
		from := now.Truncate(time.Hour).Add(-23 * time.Hour)
		return from, now
	}
	from := now.AddDate(0, 0, -days).Truncate(24 * time.Hour)
	to := now.Add(24 * time.Hour).Truncate(24 * time.Hour)
	return from, to
}

// generateSessionID derives a session ID from visitor identity and date.
func generateSessionID(visitorID string) string {
	day := time.Now().UTC().Format("2006-01-02")
	h := sha256.New()
	h.Write([]byte(visitorID + "|" + day))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// RegisterCollect registers the public collect endpoint.
func (h *Handler) RegisterCollect(e *echo.Echo) {
	e.POST("/api/analytics/collect", h.Collect)
}

// RegisterAdmin registers the dashboard and stats API behind the given auth
// middleware. Callers without an authenticated admin surface must not mount
// these routes.
func (h *Handler) RegisterAdmin(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	admin := e.Group("/admin/analytics", authMiddleware)
	admin.GET("/", h.Dashboard)
	admin.GET("/api/stats", h.GetStats)
	admin.GET("/api/bot-stats", h.GetBotStats)
}
