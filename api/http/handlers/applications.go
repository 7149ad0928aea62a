package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/application"
	"github.com/campusjobs/board/pkg/job"
)

type ApplicationsHandler struct {
	uc application.UseCase
}

func NewApplicationsHandler(uc application.UseCase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

type applicationResponse struct {
	ID           string `json:"id"`
	JobID        string `json:"job_id"`
	JobTitle     string `json:"job_title,omitempty"`
	StudentEmail string `json:"student_email,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toApplicationResponse(a application.Application) applicationResponse {
	return applicationResponse{
		ID:           a.ID.String(),
		JobID:        a.JobID.String(),
		JobTitle:     a.JobTitle,
		StudentEmail: a.StudentEmail,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

// Apply submits the caller's application to an open posting.
// @Summary Apply to posting
// @Tags    applications
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Security BearerAuth
// @Success 201 {object} applicationResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/apply [post]
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	a, err := h.uc.Apply(c.Context(), uid, jobID)
	if err != nil {
		return applicationError(c, err, "failed to apply")
	}
	return presenter.JSON(c, http.StatusCreated, toApplicationResponse(a))
}

// Mine lists the caller's own applications.
// @Summary List own applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} applicationResponse
// @Router  /applications/mine [get]
func (h *ApplicationsHandler) Mine(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	as, err := h.uc.ListByStudent(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list applications")
	}
	return presenter.JSON(c, http.StatusOK, toApplicationList(as))
}

// ListForOwner lists applications to the caller's postings.
// @Summary List applications to own postings
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} applicationResponse
// @Router  /faculty/applications [get]
func (h *ApplicationsHandler) ListForOwner(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	as, err := h.uc.ListForOwner(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list applications")
	}
	return presenter.JSON(c, http.StatusOK, toApplicationList(as))
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application along the review pipeline.
// @Summary Update application status
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id path string true "application ID (UUID)"
// @Param   input body updateApplicationStatusRequest true "target status"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /faculty/applications/{id}/status [put]
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	status, err := application.ParseStatus(req.Status)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	if err := h.uc.UpdateStatus(c.Context(), uid, id, status); err != nil {
		return applicationError(c, err, "failed to update application")
	}
	return c.SendStatus(http.StatusNoContent)
}

func toApplicationList(as []application.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

func applicationError(c *fiber.Ctx, err error, fallback string) error {
	var verr application.ErrValidation
	switch {
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, application.ErrAlreadyApplied):
		return presenter.Error(c, http.StatusConflict, "already applied to this posting")
	case errors.Is(err, application.ErrNotFound), errors.Is(err, job.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	default:
		return presenter.Error(c, http.StatusInternalServerError, fallback)
	}
}
