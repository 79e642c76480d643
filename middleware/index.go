package middleware

import (
	"errors"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

const AdminSessionCookie = "admin_session"

// AdminProtected gates admin-only routes on the signed session cookie.
func AdminProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AdminSessionCookie)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_ADMIN, errors.New("no session"))
		}

		isAdmin, err := helper.ParseAdminToken(token)
		if err != nil || !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_ADMIN, err)
		}

		c.Locals("isAdmin", true)
		return c.Next()
	}
}

// OptionalAdmin resolves the session cookie without rejecting; handlers that
// render differently for admins read the flag from Locals.
func OptionalAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AdminSessionCookie)
		if token == "" {
			c.Locals("isAdmin", false)
			return c.Next()
		}
		isAdmin, _ := helper.ParseAdminToken(token)
		c.Locals("isAdmin", isAdmin)
		return c.Next()
	}
}
