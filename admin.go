package mywebsite

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MostafaKMilly/my-website/content"
	"github.com/MostafaKMilly/my-website/views"
)

// The admin surface is read-and-assets-only: articles are authored as files
// in the content directory, so the dashboard lists posts (drafts included),
// previews unpublished ones, and manages uploaded images.

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return Render(c, views.AdminDashboard(a.site(), a.Library.All(), c.QueryParam("msg"), CsrfToken(c)))
}

// handleAdminPost previews any post by slug, drafts included, rendered with
// the same template readers see.
func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	post, err := a.Library.GetAny(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	related := views.FilterRelatedPosts(post, a.Library.Posts(""))
	return Render(c, views.Post(a.site(), a.postMeta(post), post, related))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}
