package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campusjobs/board/api/http/presenter"
	"github.com/campusjobs/board/pkg/identity"
)

type AuthHandler struct {
	useCase identity.UseCase
}

func NewAuthHandler(useCase identity.UseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// student fields
	Major    string  `json:"major"`
	GradYear int     `json:"grad_year"`
	GPA      float32 `json:"gpa"`
	// faculty fields
	Department  string `json:"department"`
	OfficeHours string `json:"office_hours"`
}

// Register handles student/faculty self-serve registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	role := identity.RoleStudent
	if req.Role != "" {
		parsed, err := identity.ParseRole(req.Role)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid role")
		}
		role = parsed
	}
	result, err := h.useCase.Register(c.Context(), identity.Registration{
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Profile: identity.Profile{
			Major: req.Major, GradYear: req.GradYear, GPA: req.GPA,
			Department: req.Department, OfficeHours: req.OfficeHours,
		},
	})
	if err != nil {
		return authError(c, err, "failed to register user")
	}
	return presenter.JSON(c, http.StatusCreated, authResponse(result))
}

type registerRepRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// RegisterRep creates a company representative account.
// @Summary Register company representative
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRepRequest true "rep registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register-rep [post]
func (h *AuthHandler) RegisterRep(c *fiber.Ctx) error {
	var req registerRepRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	result, err := h.useCase.RegisterRep(c.Context(), req.Email, req.Password, req.CompanyName, req.FirstName, req.LastName)
	if err != nil {
		return authError(c, err, "failed to register representative")
	}
	return presenter.JSON(c, http.StatusCreated, authResponse(result))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Email == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}
	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}
	return presenter.JSON(c, http.StatusOK, authResponse(result))
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdatePassword changes the password of the authenticated user.
// @Summary Update password
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body updatePasswordRequest true "password change payload"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/password [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.UpdatePassword(c.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		var verr identity.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, identity.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusUnauthorized, "current password is incorrect")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update password")
		}
	}
	return c.SendStatus(http.StatusNoContent)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset issues a reset token for the given email.
// @Summary Request password reset
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body passwordResetRequest true "reset payload"
// @Success 202 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req passwordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Email == "" {
		return presenter.Error(c, http.StatusBadRequest, "email is required")
	}
	if err := h.useCase.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to request password reset")
	}
	// Unknown emails get the same answer as known ones.
	return presenter.JSON(c, http.StatusAccepted, fiber.Map{"status": "reset requested"})
}

func authError(c *fiber.Ctx, err error, fallback string) error {
	var verr identity.ErrValidation
	switch {
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, identity.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusConflict, "user already exists")
	default:
		return presenter.Error(c, http.StatusInternalServerError, fallback)
	}
}

func authResponse(result identity.AuthResult) fiber.Map {
	return fiber.Map{
		"id":        result.User.ID.String(),
		"email":     result.User.Email,
		"role":      string(result.User.Role),
		"createdAt": result.User.CreatedAt,
		"token":     result.Token,
	}
}
