package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's RayID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber locals key under which the RayID is stored.
const LocalsKey = "ray_id"

// New returns a middleware that assigns a RayID to every request.
// An incoming X-Ray-ID header is honored so upstream proxies can propagate
// their own trace IDs; otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
