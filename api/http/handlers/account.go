package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/identity"
)

// AccountHandler owns the destructive account flow.
type AccountHandler struct {
	uc identity.UseCase
}

func NewAccountHandler(uc identity.UseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

type deleteAccountRequest struct {
	ConfirmText string `json:"confirmText"`
}

// Delete removes the caller's account. The confirmation text must equal
// the literal string "DELETE"; tracking events are anonymized, not
// deleted. There is no undo or grace window.
// @Summary Delete own account
// @Tags    account
// @Accept  json
// @Produce json
// @Param   input body deleteAccountRequest true "typed confirmation"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /account [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var req deleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.uc.DeleteAccount(c.Context(), uid, req.ConfirmText); err != nil {
		var verr identity.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, identity.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "account not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to delete account")
		}
	}
	return c.SendStatus(http.StatusNoContent)
}
