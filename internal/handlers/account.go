package handlers

import (
	"errors"

	"pixvault/internal/services/account"
	"pixvault/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	acct, err := h.accountService.Get(c.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return utils.NotFound(c, "Account not found")
		}
		return utils.InternalError(c, "Failed to get account")
	}

	return utils.Success(c, fiber.Map{"account": acct})
}

func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      decimal.Decimal `json:"amount" validate:"required"`
		Description string          `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	acct, err := h.accountService.Deposit(c.Context(), claims.AccountID, input.Amount, input.Description)
	if err != nil {
		if errors.Is(err, account.ErrInvalidAmount) {
			return utils.BadRequest(c, "Amount must be greater than 0")
		}
		if errors.Is(err, account.ErrAccountNotFound) {
			return utils.NotFound(c, "Account not found")
		}
		return utils.InternalError(c, "Deposit failed")
	}

	return utils.Success(c, fiber.Map{
		"account_id": acct.ID,
		"balance":    acct.Balance,
	})
}

func (h *AccountHandler) History(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	entries, err := h.accountService.History(c.Context(), claims.AccountID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to get transaction history")
	}

	return utils.Success(c, fiber.Map{"history": entries})
}

func (h *AccountHandler) Withdrawals(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	withdrawals, err := h.accountService.Withdrawals(c.Context(), claims.AccountID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to get withdrawals")
	}

	return utils.Success(c, fiber.Map{"withdrawals": withdrawals})
}
