package handlers

import (
	"errors"

	"pixvault/internal/services/pixkey"
	"pixvault/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PixKeyHandler struct {
	pixKeyService pixkey.Service
}

func NewPixKeyHandler(pixKeyService pixkey.Service) *PixKeyHandler {
	return &PixKeyHandler{pixKeyService: pixKeyService}
}

func (h *PixKeyHandler) Create(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		KeyType  string `json:"key_type" validate:"required,oneof=cpf cnpj email phone random"`
		KeyValue string `json:"key_value" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	key, err := h.pixKeyService.Register(c.Context(), claims.AccountID, input.KeyType, input.KeyValue)
	if err != nil {
		if errors.Is(err, pixkey.ErrInvalidKey) {
			return utils.UnprocessableEntity(c, err.Error())
		}
		if errors.Is(err, pixkey.ErrDuplicateKey) {
			return utils.BadRequest(c, "Pix key already registered")
		}
		return utils.InternalError(c, "Failed to register pix key")
	}

	return utils.Created(c, fiber.Map{"pix_key": key})
}

func (h *PixKeyHandler) List(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	keys, err := h.pixKeyService.List(c.Context(), claims.AccountID)
	if err != nil {
		return utils.InternalError(c, "Failed to list pix keys")
	}

	return utils.Success(c, fiber.Map{"pix_keys": keys})
}

func (h *PixKeyHandler) Delete(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	keyID := c.Params("id")
	if err := h.pixKeyService.Delete(c.Context(), claims.AccountID, keyID); err != nil {
		if errors.Is(err, pixkey.ErrKeyNotFound) {
			return utils.NotFound(c, "Pix key not found")
		}
		return utils.InternalError(c, "Failed to delete pix key")
	}

	return utils.Success(c, fiber.Map{"message": "Pix key deleted"})
}
