package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// encodedRedirect sends the caller to path with the outcome of a form
// mutation encoded in the query string: ?success=<msg> or ?error=<msg>.
// Every form handler reports its result this way so the UI can render
// success/error banners uniformly.
func encodedRedirect(c echo.Context, status, path, message string) error {
	return c.Redirect(http.StatusSeeOther, path+"?"+status+"="+url.QueryEscape(message))
}
