package transport

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterDevProxy forwards /api/* to target with the /api prefix removed.
func RegisterDevProxy(e *echo.Echo, target string) error {
	upstream, err := url.Parse(target)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return fmt.Errorf("dev proxy target %q is not an absolute url", target)
	}

	group := e.Group("/api")
	group.Use(
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Request().Host = upstream.Host
				return next(c)
			}
		},
		middleware.ProxyWithConfig(middleware.ProxyConfig{
			Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: upstream}}),
			Rewrite:  map[string]string{"/api/*": "/$1"},
		}),
	)
	slog.Info("dev proxy enabled", slog.String("prefix", "/api"), slog.String("target", upstream.String()))
	return nil
}
