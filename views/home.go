package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MostafaKMilly/my-website/content"
)

// Home renders the article listing page, optionally filtered by tag.
func Home(site Site, meta PageMeta, posts []content.Post, activeTag string, tags []string) templ.Component {
	return page(site, meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, "<section class=\"intro\"><h1>%s</h1>", esc(site.Name))
		if site.Description != "" {
			fmt.Fprintf(w, "<p>%s</p>", esc(site.Description))
		}
		fmt.Fprint(w, "</section>")

		if err := tagList(w, tags, activeTag); err != nil {
			return err
		}

		fmt.Fprint(w, "<section class=\"post-list\">")
		if len(posts) == 0 {
			fmt.Fprint(w, "<p class=\"empty\">Nothing here yet.</p>")
		}
		for _, p := range posts {
			if err := postCard(w, p); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "</section>")
		return err
	}))
}

func tagList(w io.Writer, tags []string, active string) error {
	if len(tags) == 0 {
		return nil
	}
	fmt.Fprint(w, "<nav class=\"tags\">")
	fmt.Fprintf(w, "<a class=\"%s\" href=\"/\">all</a>", tagClass(active == ""))
	for _, t := range tags {
		fmt.Fprintf(w, "<a class=\"%s\" href=\"/?tag=%s\">%s</a>",
			tagClass(t == active), PathEscape(t), esc(t))
	}
	_, err := fmt.Fprint(w, "</nav>")
	return err
}

func tagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

func postCard(w io.Writer, p content.Post) error {
	fmt.Fprint(w, "<article class=\"post-card\">")
	fmt.Fprintf(w, "<h2><a href=\"%s\">%s</a></h2>", esc(p.Link), esc(p.Title))
	fmt.Fprintf(w, "<time datetime=\"%s\">%s</time>", esc(p.Date), esc(p.Date))
	if p.Summary != "" {
		fmt.Fprintf(w, "<p>%s</p>", esc(p.Summary))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "<p class=\"card-tags\">%s</p>", esc(JoinTags(p.Tags)))
	}
	_, err := fmt.Fprint(w, "</article>")
	return err
}
