package middleware

import (
	"github.com/labstack/echo/v4"
)

// apiHeaders are set on every response. The service is a JSON API carrying
// patient records, so no response may land in a shared cache and nothing the
// server returns should ever be rendered or framed by a browser.
var apiHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	"Referrer-Policy":         "no-referrer",
	"Cache-Control":           "no-store, private",
	"Pragma":                  "no-cache",
}

// hstsValue is two years with subdomains. HSTS is only meaningful on a TLS
// response, so it is set when the request arrived over TLS directly or via a
// terminating proxy.
const hstsValue = "max-age=63072000; includeSubDomains"

// SecurityHeaders hardens every response for browser-adjacent clients.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			for name, value := range apiHeaders {
				h.Set(name, value)
			}
			if c.IsTLS() || c.Request().Header.Get(echo.HeaderXForwardedProto) == "https" {
				h.Set("Strict-Transport-Security", hstsValue)
			}
			return next(c)
		}
	}
}
