package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MostafaKMilly/my-website/content"
)

// AdminLogin renders the password form. showError marks a failed attempt.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return page(site, PageMeta{Title: "Admin"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			fmt.Fprint(w, `<p class="error">Wrong password.</p>`)
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/admin/login/">
<input type="hidden" name="_csrf" value="%s"/>
<input type="password" name="password" autofocus required placeholder="Password"/>
<button type="submit">Log in</button>
</form></section>`, esc(csrfToken))
		return err
	}))
}

// AdminDashboard lists every article, drafts included, with preview links.
func AdminDashboard(site Site, posts []content.Post, message, csrfToken string) templ.Component {
	return page(site, PageMeta{Title: "Dashboard"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<section class="admin"><h1>Dashboard</h1>`)
		if message != "" {
			fmt.Fprintf(w, `<p class="notice">%s</p>`, esc(message))
		}
		fmt.Fprint(w, `<nav class="admin-nav"><a href="/admin/images/">Images</a><a href="/admin/analytics/">Analytics</a></nav>`)
		fmt.Fprintf(w, `<form method="post" action="/admin/logout/"><input type="hidden" name="_csrf" value="%s"/><button type="submit">Log out</button></form>`, esc(csrfToken))

		fmt.Fprint(w, `<table class="admin-posts"><thead><tr><th>Date</th><th>Title</th><th>Status</th></tr></thead><tbody>`)
		for _, p := range posts {
			status := "published"
			if !p.Published {
				status = "draft"
			}
			fmt.Fprintf(w, `<tr><td>%s</td><td><a href="/admin/post/%s/">%s</a></td><td>%s</td></tr>`,
				esc(p.Date), PathEscape(p.Slug), esc(p.Title), status)
		}
		_, err := fmt.Fprint(w, `</tbody></table></section>`)
		return err
	}))
}

// AdminImages lists uploaded assets and hosts the upload form.
func AdminImages(site Site, images []Image, csrfToken string) templ.Component {
	return page(site, PageMeta{Title: "Images"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<section class="admin"><h1>Images</h1>`)
		fmt.Fprintf(w, `<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">
<input type="hidden" name="_csrf" value="%s"/>
<input type="file" name="image" accept="image/*" required/>
<button type="submit">Upload</button>
</form>`, esc(csrfToken))

		fmt.Fprint(w, `<ul class="admin-images">`)
		for _, img := range images {
			fmt.Fprintf(w, `<li><img src="/public/uploads/%s" alt="%s" loading="lazy"/><code>/public/uploads/%s</code><span>%d bytes</span></li>`,
				PathEscape(img.Filename), esc(img.Filename), esc(img.Filename), img.Size)
		}
		_, err := fmt.Fprint(w, `</ul></section>`)
		return err
	}))
}
