package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	"github.com/feastfinder/feastfinder-backend/internal/service"
	"github.com/feastfinder/feastfinder-backend/pkg/utils"
)

// MaxImageSize caps uploaded event images at 10MB.
const MaxImageSize = 10 * 1024 * 1024

type eventImage struct {
	MimeType string `validate:"required,supported_image"`
}

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListEvents()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch events"))
	}

	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	req := eventRequestFromForm(c)

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	image, filename, err := h.openImageFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	if image != nil {
		defer image.Close()
	}

	userID := c.Locals("userID").(uint)

	event, err := h.eventService.CreateEvent(c.UserContext(), userID, req, readerOrNil(image), filename)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to add event"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event added successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	req := eventRequestFromForm(c)

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	image, filename, err := h.openImageFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	if image != nil {
		defer image.Close()
	}

	userID := c.Locals("userID").(uint)

	event, err := h.eventService.UpdateEvent(c.UserContext(), uint(eventID), userID, req, readerOrNil(image), filename)
	if err != nil {
		return mapEventError(c, err, "Failed to update event")
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID := c.Locals("userID").(uint)

	if err := h.eventService.DeleteEvent(c.UserContext(), uint(eventID), userID); err != nil {
		return mapEventError(c, err, "Failed to delete event")
	}

	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func eventRequestFromForm(c *fiber.Ctx) models.EventRequest {
	return models.EventRequest{
		Name:        c.FormValue("name"),
		Location:    c.FormValue("location"),
		Date:        c.FormValue("date"),
		ContactInfo: c.FormValue("contactInfo"),
	}
}

// openImageFile returns the optional "img" multipart file, rejecting
// unsupported types and oversized payloads before any upload happens.
// A request without a file is not an error.
func (h *EventHandler) openImageFile(c *fiber.Ctx) (multipart.File, string, error) {
	fileHeader, err := c.FormFile("img")
	if err != nil {
		return nil, "", nil
	}

	if fileHeader.Size > MaxImageSize {
		return nil, "", errors.New("image file too large")
	}

	img := eventImage{MimeType: fileHeader.Header.Get("Content-Type")}
	if err := h.validator.Struct(img); err != nil {
		return nil, "", errors.New("unsupported image type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", errors.New("failed to read image file")
	}

	return file, fileHeader.Filename, nil
}

func readerOrNil(file multipart.File) io.Reader {
	if file == nil {
		return nil
	}
	return file
}

func mapEventError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrNotEventOwner):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(fallback))
	}
}
