package handler

import (
	"errors"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/middleware"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminLogin checks the shared admin password against the settings row and
// sets the session cookie. One shared role, no user accounts.
func AdminLogin(c *fiber.Ctx) error {
	type LoginInput struct {
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)
	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_PASSWORD, err)
	}
	if loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_PASSWORD, errors.New("password is required"))
	}

	db := database.DB
	var setting model.Setting
	if err := db.First(&setting, 1).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_NOT_CONFIGURED, err)
	}
	if setting.AdminPasswordHash == "" {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_NOT_CONFIGURED, errors.New("no password hash"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, setting.AdminPasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match"))
	}

	token, err := helper.GenerateAdminToken()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
		Expires:  time.Now().Add(helper.AdminSessionHours * time.Hour),
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"admin": true})
}

func AdminLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
	})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"admin": false})
}

// AdminMe lets the client relight the admin UI after a refresh.
func AdminMe(c *fiber.Ctx) error {
	isAdmin, _ := c.Locals("isAdmin").(bool)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"admin": isAdmin})
}

func AdminChangePassword(c *fiber.Ctx) error {
	type ChangeInput struct {
		NewPassword string `json:"newPassword"`
	}

	input := new(ChangeInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}
	if len(input.NewPassword) < 8 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PASSWORD_TOO_SHORT, errors.New("min 8 characters"))
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db := database.DB
	if err := db.Model(&model.Setting{}).Where("id = ?", 1).
		Update("admin_password_hash", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Password changed")
}
