package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/analytics"
)

type AnalyticsHandler struct {
	uc analytics.UseCase
}

func NewAnalyticsHandler(uc analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// ForOwner reports engagement for the caller's own postings.
// @Summary Engagement analytics for own postings
// @Tags    analytics
// @Produce json
// @Param   days query int false "date range in days, default 30"
// @Security BearerAuth
// @Success 200 {object} analytics.Summary
// @Router  /faculty/analytics [get]
func (h *AnalyticsHandler) ForOwner(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	sum, err := h.uc.ForOwner(c.Context(), uid, parseDays(c))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to compute analytics")
	}
	return presenter.JSON(c, http.StatusOK, sum)
}

// ForAll reports engagement across every posting (admin dashboard).
// @Summary Platform-wide engagement analytics
// @Tags    analytics
// @Produce json
// @Param   days query int false "date range in days, default 30"
// @Security BearerAuth
// @Success 200 {object} analytics.Summary
// @Router  /admin/analytics [get]
func (h *AnalyticsHandler) ForAll(c *fiber.Ctx) error {
	sum, err := h.uc.ForAll(c.Context(), parseDays(c))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to compute analytics")
	}
	return presenter.JSON(c, http.StatusOK, sum)
}

func parseDays(c *fiber.Ctx) int {
	if n, err := strconv.Atoi(c.Query("days")); err == nil {
		return n
	}
	return 0 // use case applies the default range
}
