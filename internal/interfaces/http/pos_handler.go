package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockpos-backend/internal/application/billing"
	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/pos"
)

// POSHandler flujo de caja: abrir ticket, agregar ítems, cerrar, anular.
type POSHandler struct {
	uc  *pos.UseCase
	pdf *billing.PDFUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *pos.UseCase, pdf *billing.PDFUseCase) *POSHandler {
	return &POSHandler{uc: uc, pdf: pdf}
}

// Open godoc
// @Summary      Abrir ticket POS
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenPOSRequest  true  "Bodega y cliente opcional"
// @Success      201   {object}  dto.POSResponse
// @Router       /api/pos [post]
func (h *POSHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenPOSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddItem godoc
// @Summary      Agregar ítem al ticket (descuenta stock)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.AddPOSItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.POSResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/{id}/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddPOSItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar y cobrar el ticket
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.ClosePOSRequest  true  "Medio de pago"
// @Success      200   {object}  dto.POSResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/{id}/close [post]
func (h *POSHandler) Close(c *fiber.Ctx) error {
	var in dto.ClosePOSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular un ticket abierto (repone el stock)
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.POSResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pos/{id}/void [post]
func (h *POSHandler) Void(c *fiber.Ctx) error {
	out, err := h.uc.Void(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ticket con ítems
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.POSResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/{id} [get]
func (h *POSHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo PDF de un ticket cerrado
// @Tags         pos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pos/{id}/receipt [get]
func (h *POSHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
