package handlers

import (
	"My-Tax-Tracker/domain"
	"My-Tax-Tracker/internal/api/presenters"
	"My-Tax-Tracker/pkg/receipt"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetReceiptDetail(c *fiber.Ctx) error
		UpdateReceipt(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
		GetReceiptImage(c *fiber.Ctx) error
		DeleteReceipt(c *fiber.Ctx) error
		TotalClaims(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, domain.ErrMissingFile)
	}

	res, err := h.receiptService.UploadReceipt(c.Context(), domain.UploadReceiptRequest{File: file}, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	year := c.QueryInt("year")
	month := c.QueryInt("month")
	day := c.QueryInt("day")

	res, err := h.receiptService.GetReceipts(c.Context(), userID, year, month, day)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) GetReceiptDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	res, err := h.receiptService.GetReceiptByID(c.Context(), userID, receiptID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetReceiptDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceiptDetail)
}

func (h *receiptHandler) UpdateReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	req := new(domain.UpdateReceiptRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.receiptService.UpdateReceipt(c.Context(), userID, receiptID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrNoUpdateFields) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReceipt, err)
		}
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateReceipt)
}

func (h *receiptHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	if err := h.receiptService.UpdateStatus(c.Context(), userID, *req); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateStatus, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

func (h *receiptHandler) GetReceiptImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	image, err := h.receiptService.GetReceiptImage(c.Context(), userID, receiptID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetReceiptImage, err)
	}

	c.Set(fiber.HeaderContentType, image.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%s", image.Filename))
	return c.Send(image.Content)
}

func (h *receiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	res, err := h.receiptService.DeleteReceipt(c.Context(), userID, receiptID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteReceipt)
}

func (h *receiptHandler) TotalClaims(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	year := c.QueryInt("year")
	if year == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTotalClaims, domain.ErrInvalidYear)
	}

	res, err := h.receiptService.TotalClaims(c.Context(), userID, year)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTotalClaims, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessTotalClaims)
}

func statusForError(err error) int {
	if errors.Is(err, domain.ErrReceiptNotFound) || errors.Is(err, domain.ErrReceiptImageNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
