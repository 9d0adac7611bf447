package landing

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

// siteCSS is the stylesheet shipped in the binary, served at
// /public/site.css and copied by static exports.
//
//go:embed embedded/site.css
var siteCSS []byte

func handleStylesheet(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", siteCSS)
}
