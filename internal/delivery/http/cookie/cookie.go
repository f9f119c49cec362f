// Package cookie manages the access-token cookie carried alongside bearer
// headers as a credential transport.
package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AccessToken is the name of the cookie carrying the access token.
const AccessToken = "access_token"

// SetAccessToken attaches the token to the response as an HttpOnly cookie.
func SetAccessToken(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     AccessToken,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearAccessToken expires the cookie. The auth gate calls this on every
// invalid-credential rejection so a stale or poisoned cookie cannot cause a
// rejection loop.
func ClearAccessToken(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AccessToken,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
