// Package rayid tags every request with an id for log correlation.
package rayid

import (
	"tablediff/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is echoed on every response. An incoming value is reused.
const HeaderName = "X-Ray-ID"

// New returns the ray id middleware. It stores the id in the fiber locals
// under logger.RayIDKey.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
