package handlers

import (
	"errors"
	"log"

	"contactbook/internal/middleware"
	"contactbook/internal/models"
	"contactbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for contacts. Every route expects
// middleware.AuthRequired to have run first.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact routes on router, which is expected
// to be the /contacts group.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/", h.HandleCreateContact)
	router.Get("/", h.HandleListContacts)
	router.Put("/:id", h.HandleUpdateContact)
	router.Delete("/:id", h.HandleDeleteContact)
}

// HandleCreateContact creates a contact owned by the caller.
func (h *ContactHandler) HandleCreateContact(c *fiber.Ctx) error {
	var fields models.ContactFields
	if ok, err := parseBody(c, h.validate, &fields); !ok {
		return err
	}

	contact, err := h.service.CreateContact(middleware.UserID(c), fields)
	if err != nil {
		log.Printf("Error creating contact: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(contact)
}

// HandleListContacts returns the caller's contacts.
func (h *ContactHandler) HandleListContacts(c *fiber.Ctx) error {
	contacts, err := h.service.ListContacts(middleware.UserID(c))
	if err != nil {
		log.Printf("Error retrieving contacts: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(contacts)
}

// HandleUpdateContact replaces the fields of a contact.
func (h *ContactHandler) HandleUpdateContact(c *fiber.Ctx) error {
	var fields models.ContactFields
	if ok, err := parseBody(c, h.validate, &fields); !ok {
		return err
	}

	contact, err := h.service.UpdateContact(middleware.UserID(c), c.Params("id"), fields)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Contact not found")
		}
		log.Printf("Error updating contact: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(contact)
}

// HandleDeleteContact deletes a contact.
func (h *ContactHandler) HandleDeleteContact(c *fiber.Ctx) error {
	if _, err := h.service.DeleteContact(middleware.UserID(c), c.Params("id")); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Contact not found")
		}
		log.Printf("Error deleting contact: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Contact deleted",
	})
}
