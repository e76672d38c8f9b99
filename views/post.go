package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MostafaKMilly/my-website/content"
	"github.com/MostafaKMilly/my-website/markdown"
)

// Post renders a single article page with its related posts.
func Post(site Site, meta PageMeta, post content.Post, related []content.Post) templ.Component {
	return page(site, meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, "<article class=\"post\">")
		fmt.Fprint(w, "<header>")
		if !post.Published {
			fmt.Fprint(w, "<p class=\"draft-banner\">Draft preview, not published</p>")
		}
		fmt.Fprintf(w, "<h1>%s</h1>", esc(post.Title))
		fmt.Fprintf(w, "<time datetime=\"%s\">%s</time>", esc(post.Date), esc(post.Date))
		if len(post.Tags) > 0 {
			fmt.Fprint(w, "<nav class=\"tags\">")
			for _, t := range post.Tags {
				fmt.Fprintf(w, "<a class=\"tag\" href=\"/?tag=%s\">%s</a>", PathEscape(t), esc(t))
			}
			fmt.Fprint(w, "</nav>")
		}
		if post.Cover != "" {
			if src := markdown.SafeURL(post.Cover); src != "" {
				fmt.Fprintf(w, "<img class=\"cover\" src=\"%s\" alt=\"\" fetchpriority=\"high\"/>", src)
			}
		}
		fmt.Fprint(w, "</header>")

		if err := markdown.Markdown(post.Body).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprint(w, "</article>")

		fmt.Fprintf(w, "<script type=\"application/ld+json\">%s</script>", BlogPostingJsonLD(site, post))

		if len(related) > 0 {
			fmt.Fprint(w, "<aside class=\"related\"><h2>Related posts</h2><ul>")
			for _, r := range related {
				fmt.Fprintf(w, "<li><a href=\"%s\">%s</a></li>", esc(r.Link), esc(r.Title))
			}
			fmt.Fprint(w, "</ul></aside>")
		}
		return nil
	}))
}
