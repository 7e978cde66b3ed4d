package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// HistoryService exposes a user's own search history.
type HistoryService struct {
	history repo.SearchHistoryRepo
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(history repo.SearchHistoryRepo) *HistoryService {
	return &HistoryService{history: history}
}

// List returns one page of the user's history, newest first.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.SearchHistory], error) {
	entries, total, err := s.history.ListByUser(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.SearchHistory]{}, fmt.Errorf("service.HistoryService.List: %w", err)
	}
	return domain.Page[domain.SearchHistory]{Items: entries, Total: total}, nil
}

// Clear deletes the user's history and reports how many entries were removed.
func (s *HistoryService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.history.ClearByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("service.HistoryService.Clear: %w", err)
	}
	return n, nil
}
