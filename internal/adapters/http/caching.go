package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets a default Cache-Control on GET responses when the
// handler did not set one. Dataset views are short-lived because POST
// /post-data or DELETE /delete-data can replace them at any time.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if c.GetRespHeader(fiber.HeaderCacheControl) != "" {
			return err
		}
		if c.Response().StatusCode() >= 400 {
			c.Set(fiber.HeaderCacheControl, "no-store")
			return err
		}

		path := c.Path()
		var value string
		switch {
		case path == "/metrics", path == "/now":
			value = "no-cache"
		case path == "/health", path == "/ready":
			value = "public, max-age=10"
		case path == "/help", strings.HasPrefix(path, "/docs"):
			value = "public, max-age=3600"
		case strings.HasSuffix(path, "/location"):
			value = "public, max-age=300"
		case path == "/", strings.HasPrefix(path, "/epochs"),
			path == "/comment", path == "/header", path == "/metadata":
			value = "public, max-age=60"
		}

		if value != "" {
			c.Set(fiber.HeaderCacheControl, value)
		}
		return err
	}
}
