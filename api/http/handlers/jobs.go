package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/identity"
	"github.com/campusjobs/board/pkg/job"
	"github.com/campusjobs/board/pkg/tracking"
)

type JobsHandler struct {
	uc     job.UseCase
	tracks tracking.UseCase
}

func NewJobsHandler(uc job.UseCase, tracks tracking.UseCase) *JobsHandler {
	return &JobsHandler{uc: uc, tracks: tracks}
}

type postingRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Industry     string   `json:"industry"`
	JobType      string   `json:"job_type"`
	Location     string   `json:"location"`
	SalaryRange  string   `json:"salary_range"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Skills       []string `json:"skills"`
	ApplyURL     string   `json:"apply_url"`
	Deadline     string   `json:"deadline"` // YYYY-MM-DD
}

type postingResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Industry      string   `json:"industry"`
	JobType       string   `json:"job_type"`
	Location      string   `json:"location"`
	SalaryRange   string   `json:"salary_range"`
	Description   string   `json:"description"`
	Requirements  []string `json:"requirements"`
	Skills        []string `json:"skills"`
	ApplyURL      string   `json:"apply_url"`
	Deadline      string   `json:"deadline"`
	Status        string   `json:"status"`
	RejectionNote string   `json:"rejection_note,omitempty"`
	Archived      bool     `json:"archived"`
	CreatedAt     string   `json:"created_at"`
}

func toPostingResponse(p job.Posting) postingResponse {
	return postingResponse{
		ID:            p.ID.String(),
		Title:         p.Title,
		Company:       p.Company,
		Industry:      p.Industry,
		JobType:       string(p.JobType),
		Location:      p.Location,
		SalaryRange:   p.SalaryRange,
		Description:   p.Description,
		Requirements:  p.Requirements,
		Skills:        p.Skills,
		ApplyURL:      p.ApplyURL,
		Deadline:      p.Deadline.Format("2006-01-02"),
		Status:        string(p.Status),
		RejectionNote: p.RejectionNote,
		Archived:      p.IsArchived(time.Now().UTC()),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func toPostingList(ps []job.Posting) []postingResponse {
	out := make([]postingResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPostingResponse(p))
	}
	return out
}

func (h *JobsHandler) fromRequest(req postingRequest) (job.Posting, error) {
	p := job.Posting{
		Title:        req.Title,
		Company:      req.Company,
		Industry:     req.Industry,
		JobType:      job.JobType(req.JobType),
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       req.Skills,
		ApplyURL:     req.ApplyURL,
	}
	if s := strings.TrimSpace(req.Deadline); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return job.Posting{}, job.ErrValidation("deadline must be a valid date in YYYY-MM-DD format")
		}
		p.Deadline = d
	}
	return p, nil
}

// List is the student listing: active, unexpired postings filtered and
// sorted the way the query parameters ask.
// @Summary List open postings
// @Tags    jobs
// @Produce json
// @Param   search query string false "match on title or company"
// @Param   job_types query string false "comma-separated job types"
// @Param   industry query string false "industry equality filter"
// @Param   sort query string false "newest or deadline"
// @Security BearerAuth
// @Success 200 {array} postingResponse
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	f := job.Filter{
		Search:   c.Query("search"),
		Industry: c.Query("industry"),
	}
	if raw := strings.TrimSpace(c.Query("job_types")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			t, err := job.ParseJobType(strings.TrimSpace(part))
			if err != nil {
				return presenter.Error(c, http.StatusBadRequest, err.Error())
			}
			f.JobTypes = append(f.JobTypes, t)
		}
	}
	by := job.SortNewest
	if c.Query("sort") == string(job.SortDeadline) {
		by = job.SortDeadline
	}
	ps, err := h.uc.ListForStudents(c.Context(), f, by)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list postings")
	}
	return presenter.JSON(c, http.StatusOK, toPostingList(ps))
}

// Get returns one posting and records a view event for the viewer.
// @Summary Get posting by ID
// @Tags    jobs
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} postingResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	role, _ := identity.ParseRole(currentRole(c))
	p, err := h.uc.GetVisible(c.Context(), uid, role, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "posting not found")
	}
	// Fire-and-forget; a failed insert never breaks the detail view.
	h.tracks.RecordView(c.Context(), p.ID, &uid)
	return presenter.JSON(c, http.StatusOK, toPostingResponse(p))
}

// Create submits a new posting for moderation.
// @Summary Create posting
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body postingRequest true "posting payload"
// @Security BearerAuth
// @Success 201 {object} postingResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	role, err := identity.ParseRole(currentRole(c))
	if err != nil {
		return presenter.Error(c, http.StatusForbidden, "insufficient permissions")
	}
	var req postingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.fromRequest(req)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err = h.uc.Create(c.Context(), uid, role, p)
	if err != nil {
		return jobError(c, err, "failed to create posting")
	}
	return presenter.JSON(c, http.StatusCreated, toPostingResponse(p))
}

// Update edits an owned posting.
// @Summary Update posting
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Param   input body postingRequest true "posting payload"
// @Security BearerAuth
// @Success 200 {object} postingResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req postingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.fromRequest(req)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err = h.uc.Update(c.Context(), uid, id, p)
	if err != nil {
		return jobError(c, err, "failed to update posting")
	}
	return presenter.JSON(c, http.StatusOK, toPostingResponse(p))
}

// Remove withdraws an owned posting from students.
// @Summary Remove posting
// @Tags    jobs
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobsHandler) Remove(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Remove(c.Context(), uid, id); err != nil {
		return jobError(c, err, "failed to remove posting")
	}
	return c.SendStatus(http.StatusNoContent)
}

type reactivateRequest struct {
	Deadline string `json:"deadline"` // YYYY-MM-DD
}

// Reactivate puts a removed or expired posting back with a new deadline.
// @Summary Reactivate posting
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id path string true "posting ID (UUID)"
// @Param   input body reactivateRequest true "new deadline"
// @Security BearerAuth
// @Success 200 {object} postingResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/reactivate [post]
func (h *JobsHandler) Reactivate(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req reactivateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.uc.Reactivate(c.Context(), uid, id, req.Deadline)
	if err != nil {
		return jobError(c, err, "failed to reactivate posting")
	}
	return presenter.JSON(c, http.StatusOK, toPostingResponse(p))
}

// Mine lists the caller's own postings, including pending and rejected
// ones together with their rejection notes.
// @Summary List own postings
// @Tags    jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} postingResponse
// @Router  /jobs/mine [get]
func (h *JobsHandler) Mine(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	ps, err := h.uc.ListMine(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list postings")
	}
	return presenter.JSON(c, http.StatusOK, toPostingList(ps))
}

func jobError(c *fiber.Ctx, err error, fallback string) error {
	var verr job.ErrValidation
	switch {
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, job.ErrPostingDisabled):
		return presenter.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, job.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "posting not found")
	default:
		return presenter.Error(c, http.StatusInternalServerError, fallback)
	}
}
