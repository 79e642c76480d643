package handler

import (
	"fmt"
	"net/url"
	"time"

	"github.com/0mgABear/crowdwatch/config"
	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/gofiber/fiber/v2"
)

func GetProducts(c *fiber.Ctx) error {
	db := database.DB

	var products []model.Product
	if err := db.Order("name").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"products": products})
}

func CreateProduct(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateProductInput)
	db := database.DB

	product := model.Product{
		Name:   input.Name,
		Price:  *input.Price,
		Active: true,
	}
	if input.ImageUrl != nil {
		// A blank URL is stored as NULL, never as an empty string.
		product.ImageUrl = utils.StringPtr(*input.ImageUrl)
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := db.Create(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

// UpdateProducts applies a batch of partial product updates (the admin page
// saves the whole price list at once).
func UpdateProducts(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateProductsInput)
	db := database.DB

	tx := db.Begin()
	for _, u := range input.Updates {
		patch := map[string]any{}
		if u.Name != nil {
			patch["name"] = *u.Name
		}
		if u.Price != nil {
			patch["price"] = *u.Price
		}
		if u.Active != nil {
			patch["active"] = *u.Active
		}
		if u.ImageUrl != nil {
			patch["image_url"] = *u.ImageUrl
		}
		if len(patch) == 0 {
			continue
		}

		result := tx.Model(&model.Product{}).Where("id = ?", u.ID).Updates(patch)
		if result.Error != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND,
				fmt.Errorf("product %d not found", u.ID))
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Products updated")
}

func DeleteProduct(c *fiber.Ctx) error {
	productId := uint(c.Locals("inputId").(int))
	db := database.DB

	result := db.Delete(&model.Product{}, productId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Product deleted")
}

// GenerateSignature signs cloudinary upload params for product images so the
// client can upload directly without the API secret.
func GenerateSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	timestamp := time.Now().Unix()

	signable := url.Values{}
	signable.Set("timestamp", fmt.Sprintf("%d", timestamp))
	if params.Folder != "" {
		signable.Set("folder", params.Folder)
	}
	if params.PublicID != "" {
		signable.Set("public_id", params.PublicID)
	}

	signature, err := api.SignParameters(signable, config.Config("CLOUDINARY_API_SECRET"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    config.Config("CLOUDINARY_API_KEY"),
		"cloudName": config.Config("CLOUDINARY_CLOUD_NAME"),
	})
}
