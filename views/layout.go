// Package views renders the site's pages as templ components built in plain
// Go, so no template code generation step is required.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// esc escapes s for safe inclusion in HTML text and attribute values.
func esc(s string) string {
	return html.EscapeString(s)
}

// page wraps body in the shared HTML shell: head metadata, navigation, and
// footer. All OpenGraph/Twitter/JSON-LD markup is emitted here so every page
// carries complete social metadata.
func page(site Site, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := meta.Title
		if title == "" {
			title = site.Name
		}

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
`, esc(title)); err != nil {
			return err
		}
		if meta.Description != "" {
			fmt.Fprintf(w, "<meta name=\"description\" content=\"%s\"/>\n", esc(meta.Description))
		}
		if meta.URL != "" {
			fmt.Fprintf(w, "<link rel=\"canonical\" href=\"%s\"/>\n", esc(meta.URL))
			fmt.Fprintf(w, "<meta property=\"og:url\" content=\"%s\"/>\n", esc(meta.URL))
		}
		fmt.Fprintf(w, "<meta property=\"og:title\" content=\"%s\"/>\n", esc(title))
		if meta.Description != "" {
			fmt.Fprintf(w, "<meta property=\"og:description\" content=\"%s\"/>\n", esc(meta.Description))
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		fmt.Fprintf(w, "<meta property=\"og:type\" content=\"%s\"/>\n", esc(ogType))
		fmt.Fprintf(w, "<meta property=\"og:site_name\" content=\"%s\"/>\n", esc(site.Name))
		if meta.Image != "" {
			fmt.Fprintf(w, "<meta property=\"og:image\" content=\"%s\"/>\n", esc(meta.Image))
			fmt.Fprintf(w, "<meta name=\"twitter:card\" content=\"summary_large_image\"/>\n")
			fmt.Fprintf(w, "<meta name=\"twitter:image\" content=\"%s\"/>\n", esc(meta.Image))
		}
		fmt.Fprintf(w, "<link rel=\"alternate\" type=\"application/rss+xml\" title=\"%s\" href=\"/feed.xml\"/>\n", esc(site.Name))
		fmt.Fprintf(w, "<link rel=\"icon\" href=\"/favicon.svg\" type=\"image/svg+xml\"/>\n")
		fmt.Fprintf(w, "<link rel=\"stylesheet\" href=\"/public/styles.css\"/>\n")
		if ogType == "website" {
			fmt.Fprintf(w, "<script type=\"application/ld+json\">%s</script>\n", WebsiteJsonLD(site))
		}
		if site.Analytics {
			fmt.Fprintf(w, "<script defer src=\"/public/analytics.js\"></script>\n")
		}
		if _, err := fmt.Fprintf(w, `</head>
<body>
<header class="site-header">
<nav><a class="site-title" href="/">%s</a><a href="/feed.xml">RSS</a></nav>
</header>
<main>
`, esc(site.Name)); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `</main>
<footer class="site-footer"><p>© %s</p></footer>
</body>
</html>
`, esc(site.Author))
		return err
	})
}
