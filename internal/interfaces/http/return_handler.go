package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/returns"
	"github.com/tu-usuario/stockpos-backend/internal/application/wastage"
)

// ReturnHandler devoluciones de cliente.
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar devolución contra una venta
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Devolución con líneas"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener devolución con líneas
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListBySale godoc
// @Summary      Devoluciones registradas contra una venta
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/returns/sale/{saleId} [get]
func (h *ReturnHandler) ListBySale(c *fiber.Ctx) error {
	out, err := h.uc.ListBySale(c.Context(), c.Params("saleId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WastageHandler registros de merma.
type WastageHandler struct {
	uc *wastage.UseCase
}

// NewWastageHandler construye el handler.
func NewWastageHandler(uc *wastage.UseCase) *WastageHandler {
	return &WastageHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar merma (salida con motivo obligatorio)
// @Tags         wastage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWastageRequest  true  "Merma"
// @Success      201   {object}  dto.WastageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wastage [post]
func (h *WastageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWastageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mermas
// @Tags         wastage
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.WastageResponse
// @Router       /api/wastage [get]
func (h *WastageHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
