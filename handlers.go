package mywebsite

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MostafaKMilly/my-website/content"
	"github.com/MostafaKMilly/my-website/markdown"
	"github.com/MostafaKMilly/my-website/views"
)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Analytics:   a.Config.AnalyticsEnabled,
	}
}

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts := a.Library.Posts(tag)
	tags := a.Library.Tags()
	meta := views.PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
		Image:       a.ogTemplate.URL(a.Config.Name, a.Config.Description),
	}
	return Render(c, views.Home(a.site(), meta, posts, tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Library.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	related := views.FilterRelatedPosts(post, a.Library.Posts(""))
	return Render(c, views.Post(a.site(), a.postMeta(post), post, related))
}

// postMeta builds the OpenGraph metadata for a single article, including the
// social preview image URL rendered by the CDN.
func (a *App) postMeta(post content.Post) views.PageMeta {
	summary := post.Summary
	if summary == "" {
		summary = markdown.Excerpt(post.Body, 160)
	}
	return views.PageMeta{
		Title:       post.Title,
		Description: summary,
		URL:         BuildURL(a.Config.URL, "blog", post.Slug),
		OGType:      "article",
		Image:       a.ogTemplate.URL(post.Title, summary),
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Library.Posts(""))
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Library.Posts(""))
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
