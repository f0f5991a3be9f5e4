package Controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Hestia/Models"
)

// ResidentController handles resident-related API endpoints
type ResidentController struct {
	DB *gorm.DB
}

// NewResidentController creates a new ResidentController
func NewResidentController(db *gorm.DB) *ResidentController {
	return &ResidentController{DB: db}
}

// GetResidents retrieves all residents ordered by flat number
func (c *ResidentController) GetResidents(ctx *fiber.Ctx) error {
	var residents []Models.Resident
	result := c.DB.Order("flat_number").Find(&residents)
	if result.Error != nil {
		log.Println("Error fetching residents:", result.Error)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve residents"})
	}

	return ctx.JSON(residents)
}

type CreateResidentInput struct {
	Name       string `json:"name" validate:"required"`
	FlatNumber string `json:"flat_number" validate:"required"`
}

// CreateResident adds a new resident
func (c *ResidentController) CreateResident(ctx *fiber.Ctx) error {
	var input CreateResidentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and flat number are required"})
	}

	resident := Models.Resident{
		Name:       input.Name,
		FlatNumber: input.FlatNumber,
	}

	result := c.DB.Create(&resident)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") ||
			strings.Contains(result.Error.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A resident with this flat number already exists",
			})
		}

		log.Println("Error creating resident:", result.Error)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resident"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(resident)
}
