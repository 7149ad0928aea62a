package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/tracking"
)

// TrackingHandler records external-link clicks. View recording lives on
// the job detail endpoint.
type TrackingHandler struct {
	uc tracking.UseCase
}

func NewTrackingHandler(uc tracking.UseCase) *TrackingHandler {
	return &TrackingHandler{uc: uc}
}

type trackClickRequest struct {
	JobID string `json:"job_id"`
}

// TrackClick records that the viewer activated the external application
// link. Insert failures are swallowed so the click-through is never
// interrupted.
// @Summary Track external link click
// @Tags    tracking
// @Accept  json
// @Produce json
// @Param   input body trackClickRequest true "clicked posting"
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/track-click [post]
func (h *TrackingHandler) TrackClick(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var req trackClickRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "job_id must be a valid UUID")
	}
	h.uc.RecordClick(c.Context(), jobID, &uid)
	return presenter.JSON(c, http.StatusAccepted, fiber.Map{"status": "recorded"})
}
