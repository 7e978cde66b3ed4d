package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// ProfileRepo stores one profile per user, keyed by the token subject.
type ProfileRepo interface {
	// Get returns domain.ErrNotFound if the user never saved a profile.
	Get(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error)

	// FindByUsername and FindByEmail match case-insensitively.
	FindByUsername(ctx context.Context, username string) (domain.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (domain.UserProfile, error)

	// Save inserts the profile or overwrites the user's existing one.
	// Returns domain.ErrConflict if the username or email belongs to another user.
	Save(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
}

// pgProfileRepo is the Postgres implementation of ProfileRepo.
type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

const profileColumns = `user_id, username, email, first_name, last_name, preferred_units, created_at, updated_at`

func (r *pgProfileRepo) Get(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = @user_id`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.ProfileRepo.Get: %w", err)
	}
	return result, nil
}

func (r *pgProfileRepo) FindByUsername(ctx context.Context, username string) (domain.UserProfile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE username <> '' AND lower(username) = lower(@username)`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.ProfileRepo.FindByUsername: %w", err)
	}
	return result, nil
}

func (r *pgProfileRepo) FindByEmail(ctx context.Context, email string) (domain.UserProfile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE email <> '' AND lower(email) = lower(@email)`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.ProfileRepo.FindByEmail: %w", err)
	}
	return result, nil
}

func (r *pgProfileRepo) Save(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	const q = `
		INSERT INTO user_profiles (user_id, username, email, first_name, last_name, preferred_units)
		VALUES (@user_id, @username, @email, @first_name, @last_name, @preferred_units)
		ON CONFLICT (user_id) DO UPDATE SET
			username        = EXCLUDED.username,
			email           = EXCLUDED.email,
			first_name      = EXCLUDED.first_name,
			last_name       = EXCLUDED.last_name,
			preferred_units = EXCLUDED.preferred_units,
			updated_at      = now()
		RETURNING ` + profileColumns

	args := pgx.NamedArgs{
		"user_id":         p.UserID,
		"username":        p.Username,
		"email":           p.Email,
		"first_name":      p.FirstName,
		"last_name":       p.LastName,
		"preferred_units": string(p.PreferredUnits),
	}

	result, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.ProfileRepo.Save: %w", err)
	}
	return result, nil
}

func scanProfile(s scanner) (domain.UserProfile, error) {
	var (
		p     domain.UserProfile
		id    pgtype.UUID
		units string
	)
	err := s.Scan(&id, &p.Username, &p.Email, &p.FirstName, &p.LastName, &units, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.UserProfile{}, translate(err)
	}
	p.UserID = uuid.UUID(id.Bytes)
	p.PreferredUnits = domain.Units(units)
	return p, nil
}
