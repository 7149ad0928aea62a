package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusjobs/board/pkg/identity"
)

const minDescriptionLen = 50
const minRejectionNoteLen = 10

var (
	// ErrPostingDisabled is returned when the feature flag for the
	// caller's role is switched off.
	ErrPostingDisabled = errors.New("posting is currently disabled for this role")
	ErrNotFound        = errors.New("posting not found")
)

// ErrValidation carries a user-facing validation message.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// PostingPolicy answers whether a role may create postings right now.
// Implemented by the settings service.
type PostingPolicy interface {
	CanPost(ctx context.Context, role identity.Role) (bool, error)
}

// UseCase covers the whole posting lifecycle: owner mutations, admin
// moderation and the student-facing listing.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, ownerRole identity.Role, p Posting) (Posting, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, p Posting) (Posting, error)
	Remove(ctx context.Context, ownerID, id uuid.UUID) error
	Reactivate(ctx context.Context, ownerID, id uuid.UUID, newDeadline string) (Posting, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID, note string) error
	// GetVisible applies role-based visibility: students only see
	// postings that are active and not archived; owners see their own;
	// admin and staff see everything.
	GetVisible(ctx context.Context, viewerID uuid.UUID, viewerRole identity.Role, id uuid.UUID) (Posting, error)
	ListForStudents(ctx context.Context, f Filter, by Sort) ([]Posting, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Posting, error)
	ListPending(ctx context.Context, limit, offset int) ([]Posting, error)
	ListAll(ctx context.Context, limit, offset int) ([]Posting, error)
}

type service struct {
	repo   Repository
	policy PostingPolicy
	now    func() time.Time
}

func NewService(repo Repository, policy PostingPolicy) UseCase {
	return &service{repo: repo, policy: policy, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, ownerRole identity.Role, p Posting) (Posting, error) {
	allowed, err := s.policy.CanPost(ctx, ownerRole)
	if err != nil {
		return Posting{}, err
	}
	if !allowed {
		return Posting{}, ErrPostingDisabled
	}
	if err := s.validate(p); err != nil {
		return Posting{}, err
	}
	if !p.Deadline.After(s.now()) {
		return Posting{}, ErrValidation("deadline must be in the future")
	}

	p.ID = uuid.New()
	p.OwnerID = ownerID
	p.Status = StatusPending // every new posting awaits moderation
	p.RejectionNote = ""
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	p = normalize(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return Posting{}, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, p Posting) (Posting, error) {
	current, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return Posting{}, err
	}
	if err := s.validate(p); err != nil {
		return Posting{}, err
	}
	current.Title = p.Title
	current.Company = p.Company
	current.Industry = p.Industry
	current.JobType = p.JobType
	current.Location = p.Location
	current.SalaryRange = p.SalaryRange
	current.Description = p.Description
	current.Requirements = p.Requirements
	current.Skills = p.Skills
	current.ApplyURL = p.ApplyURL
	current.Deadline = p.Deadline
	current.UpdatedAt = s.now()
	current = normalize(current)
	if err := s.repo.Update(ctx, current); err != nil {
		return Posting{}, err
	}
	return current, nil
}

func (s *service) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	current, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if current.Status == StatusRejected || current.Status == StatusRemoved {
		return ErrValidation("posting cannot be removed in its current state")
	}
	return s.repo.SetStatus(ctx, id, StatusRemoved, "")
}

// Reactivate puts a removed or expired posting back in front of students
// with a fresh deadline. Rejected postings stay rejected; pending ones
// are still awaiting moderation and have nothing to reactivate.
func (s *service) Reactivate(ctx context.Context, ownerID, id uuid.UUID, newDeadline string) (Posting, error) {
	deadline, err := time.Parse("2006-01-02", strings.TrimSpace(newDeadline))
	if err != nil {
		return Posting{}, ErrValidation("deadline must be a valid date in YYYY-MM-DD format")
	}
	if !deadline.After(s.now()) {
		return Posting{}, ErrValidation("deadline must be in the future")
	}
	current, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return Posting{}, err
	}
	if current.Status != StatusActive && current.Status != StatusRemoved {
		return Posting{}, ErrValidation("only active or removed postings can be reactivated")
	}
	current.Deadline = deadline
	current.Status = StatusActive
	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Posting{}, err
	}
	return current, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusPending {
		return ErrValidation(fmt.Sprintf("cannot approve a %s posting", current.Status))
	}
	return s.repo.SetStatus(ctx, id, StatusActive, "")
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, note string) error {
	note = strings.TrimSpace(note)
	if len(note) < minRejectionNoteLen {
		return ErrValidation(fmt.Sprintf("rejection reason must be at least %d characters", minRejectionNoteLen))
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusPending {
		return ErrValidation(fmt.Sprintf("cannot reject a %s posting", current.Status))
	}
	return s.repo.SetStatus(ctx, id, StatusRejected, note)
}

func (s *service) GetVisible(ctx context.Context, viewerID uuid.UUID, viewerRole identity.Role, id uuid.UUID) (Posting, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	switch viewerRole {
	case identity.RoleAdmin, identity.RoleStaff:
		return p, nil
	default:
		if p.OwnerID == viewerID {
			return p, nil
		}
		if !p.VisibleToStudents(s.now()) {
			return Posting{}, ErrNotFound
		}
		return p, nil
	}
}

func (s *service) ListForStudents(ctx context.Context, f Filter, by Sort) ([]Posting, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	res := make([]Posting, 0, len(active))
	for _, p := range active {
		if p.IsArchived(now) {
			continue
		}
		if f.Matches(p) {
			res = append(res, p)
		}
	}
	SortPostings(res, by)
	return res, nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Posting, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) ListPending(ctx context.Context, limit, offset int) ([]Posting, error) {
	return s.repo.ListByStatus(ctx, StatusPending, limit, offset)
}

func (s *service) ListAll(ctx context.Context, limit, offset int) ([]Posting, error) {
	return s.repo.ListAll(ctx, limit, offset)
}

func (s *service) validate(p Posting) error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrValidation("title is required")
	}
	if strings.TrimSpace(p.Company) == "" {
		return ErrValidation("company is required")
	}
	if _, err := ParseJobType(string(p.JobType)); err != nil {
		return ErrValidation("job type must be Internship, Part-Time or Full-Time")
	}
	if len(strings.TrimSpace(p.Description)) < minDescriptionLen {
		return ErrValidation(fmt.Sprintf("description must be at least %d characters", minDescriptionLen))
	}
	if p.Deadline.IsZero() {
		return ErrValidation("deadline is required")
	}
	return nil
}

func normalize(p Posting) Posting {
	p.Title = strings.TrimSpace(p.Title)
	p.Company = strings.TrimSpace(p.Company)
	p.Industry = strings.TrimSpace(p.Industry)
	p.Location = strings.TrimSpace(p.Location)
	p.Description = strings.TrimSpace(p.Description)
	p.Requirements = trimAll(p.Requirements)
	p.Skills = trimAll(p.Skills)
	return p
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
