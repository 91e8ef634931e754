package handlers

import (
	"errors"
	"time"

	"pixvault/internal/services/withdrawal"
	"pixvault/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct {
	withdrawalService withdrawal.Service
	processor         *withdrawal.Processor
}

func NewWithdrawalHandler(withdrawalService withdrawal.Service, processor *withdrawal.Processor) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
		processor:         processor,
	}
}

// Withdraw accepts an immediate or scheduled withdrawal request.
// schedule_at is optional; when present it must parse as
// "2006-01-02 15:04:05" or RFC 3339 and lie strictly in the future.
func (h *WithdrawalHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount     decimal.Decimal `json:"amount" validate:"required"`
		PixKey     string          `json:"pix_key" validate:"required"`
		ScheduleAt string          `json:"schedule_at"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var scheduleFor *time.Time
	if input.ScheduleAt != "" {
		t, err := parseScheduleAt(input.ScheduleAt)
		if err != nil {
			return utils.BadRequest(c, "Invalid schedule_at format")
		}
		scheduleFor = &t
	}

	result, err := h.withdrawalService.Withdraw(c.Context(), withdrawal.Request{
		AccountID:   claims.AccountID,
		Amount:      input.Amount,
		PixKey:      input.PixKey,
		ScheduleFor: scheduleFor,
	})
	if err != nil {
		return h.mapWithdrawError(c, err)
	}

	return utils.Created(c, result)
}

// ProcessScheduled triggers one batch run. The periodic scheduler is
// the normal caller; this endpoint exists for operational replays.
func (h *WithdrawalHandler) ProcessScheduled(c *fiber.Ctx) error {
	if _, err := extractClaims(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	result, err := h.processor.Run(c.Context())
	if err != nil {
		return utils.InternalError(c, "Batch processing failed")
	}

	return utils.Success(c, result)
}

func (h *WithdrawalHandler) mapWithdrawError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, withdrawal.ErrAccountNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, withdrawal.ErrPixKeyNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, withdrawal.ErrInvalidSchedule),
		errors.Is(err, withdrawal.ErrInvalidAmount):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, withdrawal.ErrInsufficientBalance):
		return utils.UnprocessableEntity(c, err.Error())
	default:
		return utils.InternalError(c, "Withdrawal failed")
	}
}

func parseScheduleAt(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateTime, value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
