package service

import (
	"context"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/spelling"
)

// SpellingListService exposes the custom word lists to the API.
type SpellingListService interface {
	ListSpellingLists(ctx context.Context) ([]spelling.List, error)
}

type spellingListServiceImpl struct {
	store *spelling.Store
}

func NewSpellingListService(store *spelling.Store) SpellingListService {
	return &spellingListServiceImpl{store: store}
}

func (s *spellingListServiceImpl) ListSpellingLists(ctx context.Context) ([]spelling.List, error) {
	lists, err := s.store.Load()
	if err != nil {
		return nil, domain.NewFetchFailedError("Failed to load spelling lists", err)
	}
	return lists, nil
}
