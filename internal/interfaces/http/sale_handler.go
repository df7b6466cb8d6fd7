package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/techstore/pos-api/internal/application/dto"
	"github.com/techstore/pos-api/internal/domain"
)

// SaleCreator confirma ventas (motor de ventas).
type SaleCreator interface {
	Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error)
}

// SaleReader lecturas sobre ventas confirmadas.
type SaleReader interface {
	List(ctx context.Context) (*dto.SaleListResponse, error)
	Get(ctx context.Context, id int64) (*dto.SaleResponse, error)
	InvoicePDF(ctx context.Context, id int64) ([]byte, error)
}

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	creator SaleCreator
	reader  SaleReader
}

// NewSaleHandler construye el handler.
func NewSaleHandler(creator SaleCreator, reader SaleReader) *SaleHandler {
	return &SaleHandler{creator: creator, reader: reader}
}

// Create confirma una venta y descuenta el stock.
// POST /api/sales
//
// Mapeo de errores: carrito vacío / datos inválidos -> 400, producto
// inexistente -> 404, stock insuficiente (incluye carreras entre cajas,
// reintentables) -> 409, fallo de infraestructura -> 500.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.creator.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "served_by y líneas con cantidad positiva son requeridos"})
		}
		var notFound *domain.ProductNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: notFound.Error()})
		}
		var noStock *domain.InsufficientStockError
		if errors.As(err, &noStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: noStock.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo procesar la venta"})
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List retorna todas las ventas, más recientes primero.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.reader.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID retorna el detalle completo de una venta.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.reader.Get(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// InvoicePDF retorna la factura imprimible de la venta.
// GET /api/sales/:id/pdf
func (h *SaleHandler) InvoicePDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	pdfBytes, err := h.reader.InvoicePDF(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}
