package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/settings"
)

// SettingsHandler reads and writes the posting feature flags.
type SettingsHandler struct {
	uc settings.UseCase
}

func NewSettingsHandler(uc settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get returns the current flags.
// @Summary Read feature flags
// @Tags    settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Router  /admin/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load settings")
	}
	return presenter.JSON(c, http.StatusOK, s)
}

// Patch partially updates the flags; omitted fields keep their value.
// On any failure the stored flags are left untouched.
// @Summary Update feature flags
// @Tags    settings
// @Accept  json
// @Produce json
// @Param   input body settings.Patch true "flags to change"
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/settings [patch]
func (h *SettingsHandler) Patch(c *fiber.Ctx) error {
	var p settings.Patch
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s, err := h.uc.Update(c.Context(), p)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to update settings")
	}
	return presenter.JSON(c, http.StatusOK, s)
}
