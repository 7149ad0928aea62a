package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/identity"
	"github.com/campusjobs/board/pkg/studentprofile"
)

type ProfileHandler struct {
	users identity.UseCase
	prefs studentprofile.UseCase
}

func NewProfileHandler(users identity.UseCase, prefs studentprofile.UseCase) *ProfileHandler {
	return &ProfileHandler{users: users, prefs: prefs}
}

type profileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// student
	Major     string  `json:"major,omitempty"`
	GradYear  int     `json:"grad_year,omitempty"`
	GPA       float32 `json:"gpa,omitempty"`
	ResumeURL string  `json:"resume_url,omitempty"`
	// rep
	CompanyName string `json:"company_name,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	// faculty
	Department  string `json:"department,omitempty"`
	OfficeHours string `json:"office_hours,omitempty"`
}

func toProfileResponse(u identity.User) profileResponse {
	return profileResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Major:     u.Profile.Major, GradYear: u.Profile.GradYear,
		GPA: u.Profile.GPA, ResumeURL: u.Profile.ResumeURL,
		CompanyName: u.Profile.CompanyName, JobTitle: u.Profile.JobTitle,
		Department: u.Profile.Department, OfficeHours: u.Profile.OfficeHours,
	}
}

// Get returns the caller's profile.
// @Summary Get own profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	u, err := h.users.GetByID(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "profile not found")
	}
	return presenter.JSON(c, http.StatusOK, toProfileResponse(u))
}

type updateProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// student
	Major     string  `json:"major"`
	GradYear  int     `json:"grad_year"`
	GPA       float32 `json:"gpa"`
	ResumeURL string  `json:"resume_url"`
	// rep
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	// faculty
	Department  string `json:"department"`
	OfficeHours string `json:"office_hours"`
}

// Update replaces the caller's profile attributes. Fields outside the
// caller's role are ignored.
// @Summary Update own profile
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body updateProfileRequest true "profile payload"
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	u, err := h.users.UpdateProfile(c.Context(), uid, req.Email, req.FirstName, req.LastName, identity.Profile{
		Major: req.Major, GradYear: req.GradYear, GPA: req.GPA, ResumeURL: req.ResumeURL,
		CompanyName: req.CompanyName, JobTitle: req.JobTitle,
		Department: req.Department, OfficeHours: req.OfficeHours,
	})
	if err != nil {
		var verr identity.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, identity.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "email already in use")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update profile")
		}
	}
	return presenter.JSON(c, http.StatusOK, toProfileResponse(u))
}

// GetPreferences returns the student's saved interest sheet, empty sets
// when nothing was saved yet.
// @Summary Get student preferences
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} studentprofile.Preferences
// @Router  /profile/preferences [get]
func (h *ProfileHandler) GetPreferences(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	p, err := h.prefs.Get(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load preferences")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// SavePreferences replaces the interest sheet wholesale.
// @Summary Save student preferences
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body studentprofile.Preferences true "preferences payload"
// @Security BearerAuth
// @Success 200 {object} studentprofile.Preferences
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile/preferences [put]
func (h *ProfileHandler) SavePreferences(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var p studentprofile.Preferences
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p.StudentID = uid
	p, err := h.prefs.Save(c.Context(), p)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save preferences")
	}
	return presenter.JSON(c, http.StatusOK, p)
}
