package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/server/http/dto"
)

// EarningsHandler manages seller income endpoints.
type EarningsHandler struct {
	facade EarningsFacade
}

// NewEarningsHandler constructs EarningsHandler.
func NewEarningsHandler(facade EarningsFacade) *EarningsHandler {
	return &EarningsHandler{facade: facade}
}

// Snapshot handles GET /api/earnings.
func (h *EarningsHandler) Snapshot(c *gin.Context) {
	userID := CurrentUserID(c)
	snapshot, err := h.facade.Earnings(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.EarningsResponse{
		NetIncomeCents:        snapshot.NetIncomeCents,
		PendingClearanceCents: snapshot.PendingClearanceCents,
		WithdrawnCents:        snapshot.WithdrawnCents,
		AvailableCents:        snapshot.AvailableCents,
	})
}

// Withdraw handles POST /api/earnings/withdraw.
func (h *EarningsHandler) Withdraw(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, err := h.facade.Withdraw(c.Request.Context(), userID, req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInsufficientFunds):
			c.Status(http.StatusPaymentRequired)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Withdrawals handles GET /api/earnings/withdrawals.
func (h *EarningsHandler) Withdrawals(c *gin.Context) {
	userID := CurrentUserID(c)
	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(withdrawals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		resp = append(resp, dto.WithdrawalResponse{ID: w.ID, AmountCents: w.AmountCents, ProcessedAt: w.ProcessedAt})
	}
	c.JSON(http.StatusOK, resp)
}
