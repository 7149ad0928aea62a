package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/job"
)

// ModerationHandler exposes the admin review queue.
type ModerationHandler struct {
	uc job.UseCase
}

func NewModerationHandler(uc job.UseCase) *ModerationHandler {
	return &ModerationHandler{uc: uc}
}

// Approve moves a pending posting to active.
// @Summary Approve posting
// @Tags    moderation
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/approve [post]
func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Approve(c.Context(), id); err != nil {
		return jobError(c, err, "failed to approve posting")
	}
	return c.SendStatus(http.StatusNoContent)
}

type rejectRequest struct {
	Note string `json:"note"`
}

// Reject moves a pending posting to rejected. The note is mandatory and
// shown to the submitter.
// @Summary Reject posting
// @Tags    moderation
// @Accept  json
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Param   input body rejectRequest true "rejection reason, at least 10 characters"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/reject [post]
func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.uc.Reject(c.Context(), id, req.Note); err != nil {
		return jobError(c, err, "failed to reject posting")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Pending lists postings awaiting review.
// @Summary List pending postings
// @Tags    moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {array} postingResponse
// @Router  /admin/jobs/pending [get]
func (h *ModerationHandler) Pending(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	ps, err := h.uc.ListPending(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list postings")
	}
	return presenter.JSON(c, http.StatusOK, toPostingList(ps))
}

// All lists every posting regardless of status.
// @Summary List all postings
// @Tags    moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {array} postingResponse
// @Router  /admin/jobs [get]
func (h *ModerationHandler) All(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	ps, err := h.uc.ListAll(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list postings")
	}
	return presenter.JSON(c, http.StatusOK, toPostingList(ps))
}
