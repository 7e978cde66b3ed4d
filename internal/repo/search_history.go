package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// SearchHistoryRepo is the append-only log of a user's city searches.
type SearchHistoryRepo interface {
	// Append records one search. CityID may be nil.
	Append(ctx context.Context, entry domain.SearchHistory) (domain.SearchHistory, error)

	// ListByUser returns one page of the user's history, newest first,
	// and the user's total entry count.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.SearchHistory, int64, error)

	// ClearByUser deletes the user's whole history and returns how many entries went.
	ClearByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// pgSearchHistoryRepo is the Postgres implementation of SearchHistoryRepo.
type pgSearchHistoryRepo struct {
	db db
}

// NewSearchHistoryRepo constructs a SearchHistoryRepo backed by the provided db connection.
func NewSearchHistoryRepo(db db) SearchHistoryRepo {
	return &pgSearchHistoryRepo{db: db}
}

func (r *pgSearchHistoryRepo) Append(ctx context.Context, entry domain.SearchHistory) (domain.SearchHistory, error) {
	const q = `
		WITH h AS (
			INSERT INTO search_history (user_id, query, city_id)
			VALUES (@user_id, @query, @city_id)
			RETURNING id, user_id, query, city_id, searched_at
		)
		SELECT h.id, h.user_id, h.query, h.city_id, COALESCE(c.name, ''), h.searched_at
		FROM h
		LEFT JOIN cities c ON c.id = h.city_id`

	args := pgx.NamedArgs{
		"user_id": entry.UserID,
		"query":   entry.Query,
		"city_id": entry.CityID, // nil becomes NULL
	}

	result, err := scanSearchHistory(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.SearchHistory{}, fmt.Errorf("repo.SearchHistoryRepo.Append: %w", err)
	}
	return result, nil
}

func (r *pgSearchHistoryRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.SearchHistory, int64, error) {
	const countQ = `SELECT count(*) FROM search_history WHERE user_id = @user_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.SearchHistoryRepo.ListByUser: count: %w", err)
	}

	const q = `
		SELECT h.id, h.user_id, h.query, h.city_id, COALESCE(c.name, ''), h.searched_at
		FROM search_history h
		LEFT JOIN cities c ON c.id = h.city_id
		WHERE h.user_id = @user_id
		ORDER BY h.searched_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SearchHistoryRepo.ListByUser: %w", err)
	}
	entries, err := collect(rows, scanSearchHistory)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SearchHistoryRepo.ListByUser: %w", err)
	}
	return entries, total, nil
}

func (r *pgSearchHistoryRepo) ClearByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `DELETE FROM search_history WHERE user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("repo.SearchHistoryRepo.ClearByUser: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSearchHistory(s scanner) (domain.SearchHistory, error) {
	var (
		h              domain.SearchHistory
		id, user, city pgtype.UUID
	)
	if err := s.Scan(&id, &user, &h.Query, &city, &h.CityName, &h.SearchedAt); err != nil {
		return domain.SearchHistory{}, translate(err)
	}
	h.ID = uuid.UUID(id.Bytes)
	h.UserID = uuid.UUID(user.Bytes)
	if city.Valid {
		cid := uuid.UUID(city.Bytes)
		h.CityID = &cid
	}
	return h, nil
}
