package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortega/catalogo-api/internal/application/dto"
	"github.com/jortega/catalogo-api/internal/domain"
)

// statusFor mapea el Kind de un error de negocio al status HTTP. Los
// duplicados y el stock insuficiente son conflictos con el estado actual
// del catálogo (409), lo ausente es 404 y lo mal formado 400.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindMissingName, domain.KindMissingCategories, domain.KindInvalidPrice, domain.KindUnknownCategory:
		return fiber.StatusBadRequest
	case domain.KindCategoryNotFound, domain.KindProductNotFound:
		return fiber.StatusNotFound
	case domain.KindDuplicateCategory, domain.KindDuplicateProduct, domain.KindInsufficientStock:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// respondError responde con el status y el cuerpo de error que corresponden
// al Kind; los errores sin Kind (infraestructura) salen como 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	if kind == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(statusFor(kind)).JSON(dto.ErrorResponse{Code: string(kind), Message: err.Error()})
}
