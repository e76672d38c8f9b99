package analytics

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// dashboardPage renders the admin analytics dashboard as a standalone page.
func dashboardPage(period string, stats *Stats, botStats *BotStats, realtime int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString(`<meta name="robots" content="noindex"/>`)
		b.WriteString(`<title>Analytics</title>`)
		b.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
		b.WriteString(`</head><body class="admin"><main class="analytics-dashboard">`)

		b.WriteString(`<header class="dashboard-header"><h1>Analytics</h1>`)
		b.WriteString(`<nav class="period-nav">`)
		for _, p := range []string{"today", "week", "month", "year"} {
			cls := "period-link"
			if p == period {
				cls += " active"
			}
			fmt.Fprintf(&b, `<a class="%s" href="/admin/analytics/?period=%s">%s</a>`, cls, p, p)
		}
		b.WriteString(`</nav></header>`)

		fmt.Fprintf(&b, `<p class="period-range">%s</p>`, html.EscapeString(stats.Period))

		b.WriteString(`<section class="stat-cards">`)
		statCard(&b, "Visitors", stats.UniqueVisitors)
		statCard(&b, "Views", stats.TotalViews)
		statCard(&b, "Avg time (s)", stats.AvgDuration)
		statCard(&b, "Online now", realtime)
		statCard(&b, "Bot hits", botStats.TotalVisits)
		b.WriteString(`</section>`)

		if len(stats.DailyViews) > 0 {
			b.WriteString(`<section><h2>Views per day</h2><table class="stats-table"><tbody>`)
			max := 1
			for _, v := range stats.DailyViews {
				if v.Views > max {
					max = v.Views
				}
			}
			for _, v := range stats.DailyViews {
				pct := v.Views * 100 / max
				fmt.Fprintf(&b,
					`<tr><td class="stat-date">%s</td><td class="stat-bar"><span style="width:%d%%"></span></td><td class="stat-count">%d</td></tr>`,
					html.EscapeString(v.Date), pct, v.Views)
			}
			b.WriteString(`</tbody></table></section>`)
		}

		pageTable(&b, "Top pages", stats.TopPages)
		dimensionTable(&b, "Referrers", stats.ReferrerStats)
		dimensionTable(&b, "Browsers", stats.BrowserStats)
		dimensionTable(&b, "Operating systems", stats.OSStats)
		dimensionTable(&b, "Devices", stats.DeviceStats)
		dimensionTable(&b, "Bots", botStats.TopBots)
		pageTable(&b, "Pages crawled", botStats.TopPages)

		b.WriteString(`<footer class="dashboard-footer"><a href="/admin/">Back to admin</a></footer>`)
		b.WriteString(`</main></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func statCard(b *strings.Builder, label string, value int) {
	fmt.Fprintf(b, `<div class="stat-card"><span class="stat-value">%d</span><span class="stat-label">%s</span></div>`,
		value, html.EscapeString(label))
}

func pageTable(b *strings.Builder, title string, rows []PageStat) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, `<section><h2>%s</h2><table class="stats-table"><tbody>`, html.EscapeString(title))
	for _, r := range rows {
		fmt.Fprintf(b, `<tr><td>%s</td><td class="stat-count">%d</td></tr>`, html.EscapeString(r.Path), r.Views)
	}
	b.WriteString(`</tbody></table></section>`)
}

func dimensionTable(b *strings.Builder, title string, rows []DimensionStat) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, `<section><h2>%s</h2><table class="stats-table"><tbody>`, html.EscapeString(title))
	for _, r := range rows {
		fmt.Fprintf(b, `<tr><td>%s</td><td class="stat-count">%d</td></tr>`, html.EscapeString(r.Name), r.Count)
	}
	b.WriteString(`</tbody></table></section>`)
}
