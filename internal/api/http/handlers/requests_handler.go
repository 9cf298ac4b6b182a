package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zentharo/request-service/internal/api/dto"
	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/internal/service"
	"github.com/zentharo/request-service/pkg/apperrors"
)

// RequestsHandler manages the request lifecycle endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Create POST /api/requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RequestCreateInput{
		CustomerDetails: domain.CustomerDetails{
			Name:  req.CustomerDetails.Name,
			Email: req.CustomerDetails.Email,
			Phone: req.CustomerDetails.Phone,
		},
		SelectedServices: req.SelectedServices,
	}
	request, err := h.service.CreateRequest(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromRequest(request))
}

// List GET /api/requests. Newest-first by submitted timestamp.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	requests, err := h.service.ListRequests(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromRequests(requests))
}

// Get GET /api/requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	request, err := h.service.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromRequest(request))
}

// UpdateStatus PUT /api/requests/:id.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateRequestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseRequestStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("status must be Pending, Approved or Completed", nil)
	}

	request, err := h.service.UpdateStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromRequest(request))
}

// Delete DELETE /api/requests/:id. Irreversible.
func (h *RequestsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteRequest(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Request deleted successfully"})
}
