package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"coderr/internal/access"
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	ListByType(ctx context.Context, role domain.UserRole) ([]domain.Profile, error)
	UpdateWithUser(ctx context.Context, p *domain.Profile, profileFields, userFields map[string]any) error
}

type Service struct {
	profiles ProfileRepository
}

func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

func errProfileNotFound() error {
	return apperr.NotFound("No UserProfile matches the given query.")
}

func (s *Service) Get(ctx context.Context, p access.Principal, id int64) (*domain.Profile, error) {
	return s.Authorize(ctx, p, access.Retrieve, id)
}

// Authorize runs both access checks for action on the profile of user id.
func (s *Service) Authorize(ctx context.Context, p access.Principal, action access.Action, id int64) (*domain.Profile, error) {
	if err := access.CheckAction(p, access.Profile, action); err != nil {
		return nil, err
	}
	prof, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(p, access.Profile, action, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// ListByType returns every profile of role, unpaginated.
func (s *Service) ListByType(ctx context.Context, p access.Principal, role domain.UserRole) ([]domain.Profile, error) {
	if err := access.CheckAction(p, access.Profile, access.List); err != nil {
		return nil, err
	}
	return s.profiles.ListByType(ctx, role)
}

// Update writes the sent fields to a profile returned by Authorize. Names
// are kept in step on the profile and the user record.
func (s *Service) Update(ctx context.Context, prof *domain.Profile, req UpdateProfileRequest) (*domain.Profile, error) {
	profileFields := map[string]any{}
	userFields := map[string]any{}
	setString := func(column string, v *string) {
		if v != nil {
			profileFields[column] = strings.TrimSpace(*v)
		}
	}
	setString("file", req.File)
	setString("location", req.Location)
	setString("tel", req.Tel)
	setString("description", req.Description)
	setString("working_hours", req.WorkingHours)
	setString("email", req.Email)
	if req.FirstName != nil {
		profileFields["first_name"] = strings.TrimSpace(*req.FirstName)
		userFields["first_name"] = profileFields["first_name"]
	}
	if req.LastName != nil {
		profileFields["last_name"] = strings.TrimSpace(*req.LastName)
		userFields["last_name"] = profileFields["last_name"]
	}

	if err := s.profiles.UpdateWithUser(ctx, prof, profileFields, userFields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProfileNotFound()
		}
		return nil, err
	}
	slog.InfoContext(ctx, "profile updated", slog.Int64("profile_id", prof.ID), slog.Int("fields", len(profileFields)))
	return prof, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Profile, error) {
	prof, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProfileNotFound()
		}
		return nil, err
	}
	return prof, nil
}
