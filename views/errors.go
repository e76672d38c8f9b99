package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NotFound renders the styled 404 page.
func NotFound(site Site) templ.Component {
	return page(site, PageMeta{Title: "Not found"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<section class="error-page"><h1>404</h1><p>This page does not exist.</p><p><a href="/">Back to the front page</a></p></section>`)
		return err
	}))
}

// ServerError renders the styled 500 page.
func ServerError(site Site) templ.Component {
	return page(site, PageMeta{Title: "Something went wrong"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<section class="error-page"><h1>500</h1><p>Something went wrong. Try again in a moment.</p></section>`)
		return err
	}))
}
