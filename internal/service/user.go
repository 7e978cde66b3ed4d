package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

var validate = validator.New()

// UserService reads and updates the caller's profile.
type UserService struct {
	profiles repo.ProfileRepo
}

// NewUserService constructs a UserService.
func NewUserService(profiles repo.ProfileRepo) *UserService {
	return &UserService{profiles: profiles}
}

// Me returns the user's profile, or the default profile if none was saved.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	p, err := s.current(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("service.UserService.Me: %w", err)
	}
	return p, nil
}

// UpdateProfile applies patch, creating the profile on first use.
// A username or email already held by another user, compared
// case-insensitively, is domain.ErrConflict.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.UserProfile, error) {
	patch = trimProfilePatch(patch)
	if err := validateProfilePatch(patch); err != nil {
		return domain.UserProfile{}, err
	}

	p, err := s.current(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}

	if patch.Username != nil && !strings.EqualFold(*patch.Username, p.Username) {
		if err := s.ensureUnclaimed(ctx, userID, s.profiles.FindByUsername, *patch.Username, "Username already exists"); err != nil {
			return domain.UserProfile{}, err
		}
		p.Username = *patch.Username
	}
	if patch.Email != nil && !strings.EqualFold(*patch.Email, p.Email) {
		if err := s.ensureUnclaimed(ctx, userID, s.profiles.FindByEmail, *patch.Email, "Email already exists"); err != nil {
			return domain.UserProfile{}, err
		}
		p.Email = *patch.Email
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.PreferredUnits != nil {
		p.PreferredUnits = *patch.PreferredUnits
	}

	saved, err := s.profiles.Save(ctx, p)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return saved, nil
}

func (s *UserService) current(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultProfile(userID), nil
	}
	return p, err
}

func (s *UserService) ensureUnclaimed(
	ctx context.Context,
	userID uuid.UUID,
	find func(context.Context, string) (domain.UserProfile, error),
	value, taken string,
) error {
	holder, err := find(ctx, value)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	case holder.UserID != userID:
		return fmt.Errorf("%w: %s", domain.ErrConflict, taken)
	}
	return nil
}

func trimProfilePatch(p domain.ProfilePatch) domain.ProfilePatch {
	for _, f := range []**string{&p.Username, &p.Email, &p.FirstName, &p.LastName} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	return p
}

func validateProfilePatch(p domain.ProfilePatch) error {
	checks := []struct {
		value   *string
		rule    string
		message string
	}{
		{p.Username, "min=3,max=50", "Username must be between 3 and 50 characters"},
		{p.Email, "email", "Invalid email format"},
		{p.FirstName, "max=100", "First name must not exceed 100 characters"},
		{p.LastName, "max=100", "Last name must not exceed 100 characters"},
	}
	for _, c := range checks {
		if c.value != nil && validate.Var(*c.value, c.rule) != nil {
			return fmt.Errorf("%w: %s", domain.ErrValidation, c.message)
		}
	}
	if p.PreferredUnits != nil && !p.PreferredUnits.Valid() {
		return fmt.Errorf("%w: Preferred units must be 'metric' or 'imperial'", domain.ErrValidation)
	}
	return nil
}
