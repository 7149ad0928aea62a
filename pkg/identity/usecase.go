package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DeleteConfirmPhrase must be typed verbatim to delete an account.
const DeleteConfirmPhrase = "DELETE"

const resetTokenTTL = 30 * time.Minute

// UseCase describes authentication, registration and account management.
type UseCase interface {
	Register(ctx context.Context, reg Registration) (AuthResult, error)
	RegisterRep(ctx context.Context, email, password, companyName, firstName, lastName string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	RequestPasswordReset(ctx context.Context, email string) error
	GetByID(ctx context.Context, userID uuid.UUID) (User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, email, firstName, lastName string, profile Profile) (User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, confirmText string) error
}

// Registration is the self-serve sign-up payload. Admin and staff
// accounts are provisioned out of band and cannot be registered here.
type Registration struct {
	Email     string
	Password  string
	Role      Role
	FirstName string
	LastName  string
	Profile   Profile
}

type AuthResult struct {
	User  User
	Token string
}

// ErrValidation carries a user-facing validation message.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type service struct {
	repo   UserRepository
	events EventAnonymizer
	tokens TokenGenerator
}

// NewService returns the default implementation of UseCase.
func NewService(repo UserRepository, events EventAnonymizer, tokens TokenGenerator) UseCase {
	return &service{repo: repo, events: events, tokens: tokens}
}

func (s *service) Register(ctx context.Context, reg Registration) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || reg.Password == "" {
		return AuthResult{}, ErrValidation("email and password are required")
	}
	if len(reg.Password) < 8 {
		return AuthResult{}, ErrValidation("password must be at least 8 characters")
	}
	switch reg.Role {
	case RoleStudent, RoleFaculty:
	default:
		return AuthResult{}, ErrValidation("role must be student or faculty")
	}

	// If user exists, fail fast (best-effort check)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         reg.Role,
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		CreatedAt:    time.Now().UTC(),
		Profile:      reg.Profile,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *service) RegisterRep(ctx context.Context, email, password, companyName, firstName, lastName string) (AuthResult, error) {
	if strings.TrimSpace(companyName) == "" {
		return AuthResult{}, ErrValidation("company_name is required")
	}
	return s.Register(ctx, Registration{
		Email:     email,
		Password:  password,
		Role:      RoleRep,
		FirstName: firstName,
		LastName:  lastName,
		Profile:   Profile{CompanyName: strings.TrimSpace(companyName)},
	})
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *service) UpdatePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < 8 {
		return ErrValidation("password must be at least 8 characters")
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// RequestPasswordReset issues a single-use token for the given email.
// An unknown email is reported as success so the endpoint cannot be used
// to probe which addresses are registered.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(token))
	if err := s.repo.StoreResetToken(ctx, user.ID, hex.EncodeToString(sum[:]), time.Now().UTC().Add(resetTokenTTL)); err != nil {
		return err
	}
	// Delivery is out of band; operators pick tokens up from the log.
	log.Printf("password reset requested for %s, token %s", user.Email, token)
	return nil
}

func (s *service) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, email, firstName, lastName string, profile Profile) (User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, ErrValidation("email is required")
	}
	user.Email = email
	user.FirstName = strings.TrimSpace(firstName)
	user.LastName = strings.TrimSpace(lastName)
	user.Profile = scopeProfile(user.Role, profile)
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// DeleteAccount removes the identity after an exact confirmation match.
// Tracking events of the user are anonymized rather than deleted.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID, confirmText string) error {
	if confirmText != DeleteConfirmPhrase {
		return ErrValidation("confirmation text does not match")
	}
	if err := s.events.AnonymizeViewer(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

// scopeProfile keeps only the attributes that belong to the given role so
// a profile update cannot smuggle in fields of another role.
func scopeProfile(role Role, p Profile) Profile {
	switch role {
	case RoleStudent:
		return Profile{Major: p.Major, GradYear: p.GradYear, GPA: p.GPA, ResumeURL: p.ResumeURL}
	case RoleRep:
		return Profile{CompanyName: p.CompanyName, JobTitle: p.JobTitle}
	case RoleFaculty:
		return Profile{Department: p.Department, OfficeHours: p.OfficeHours}
	default:
		return Profile{}
	}
}
